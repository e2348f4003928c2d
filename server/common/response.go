package common

const (
	CodeSuccess      = 0
	CodeBadRequest   = 400
	CodeNotLogin     = 401
	CodeForbidden    = 403
	CodeUnknownError = 500
)

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

func MakeSuccessResp(data interface{}) *Resp {
	return &Resp{
		Code: CodeSuccess,
		Msg:  "success",
		Data: data,
	}
}

func MakeErrorResp(code int, msg string) *Resp {
	return &Resp{
		Code: code,
		Msg:  msg,
		Data: nil,
	}
}

func MakeUnknownErrorResp() *Resp {
	return MakeErrorResp(CodeUnknownError, "unknown error")
}
