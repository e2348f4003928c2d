package handler

import (
	"context"
	"corpus-annotator-backend/domain/corpus"
	"corpus-annotator-backend/domain/workbench"
	"corpus-annotator-backend/logging"
	"corpus-annotator-backend/server/common"
	"corpus-annotator-backend/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Setting struct {
	CorpusTitle string
}

var globalSetting = Setting{CorpusTitle: "Corpus Annotation"}

func Init(setting *Setting) {
	globalSetting = *setting
}

// 这些错误由请求内容引起，返回 400 并把原因告诉前端
var badRequestErrors = []error{
	common.ErrRequestParamEmpty,
	common.ErrRequestParamInvalid,
	corpus.ErrMalformedValue,
	corpus.ErrDelimiterInField,
	corpus.ErrEmptyField,
	corpus.ErrEmptyLineID,
	corpus.ErrLineNotFound,
	workbench.ErrLineNotLoaded,
	workbench.ErrNoActiveLine,
	workbench.ErrStaleLine,
}

func isBadRequest(err error) bool {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// writeError 记录错误并返回对应的响应，name 是 handler 的名字
func writeError(ctx *gin.Context, name string, err error) {
	if isBadRequest(err) {
		logging.Default().WithError(err).Warnf("%s bad request: %s", name, err.Error())
		ctx.JSON(http.StatusBadRequest, common.MakeErrorResp(common.CodeBadRequest, err.Error()))
		return
	}

	logging.Default().WithError(err).Errorf("%s produce error: %s", name, err.Error())
	ctx.JSON(http.StatusInternalServerError, common.MakeUnknownErrorResp())
}

func currentUser(ctx *gin.Context) *common.UserInfo {
	if user := common.GetUserInfo(ctx); user != nil {
		return user
	}
	return &common.UserInfo{}
}

// loadedBench 返回当前标注人的工作台，服务重启后第一次访问时重新加载语料
func loadedBench(ctx context.Context, user string) (*workbench.Workbench, error) {
	bench := workbench.ForUser(user)
	if bench.Index() != nil {
		return bench, nil
	}

	lines, err := corpus.LoadAll(ctx)
	if err != nil {
		return nil, utils.WrapError(err, "load corpus fail")
	}
	bench.DatasetLoaded(lines)

	return bench, nil
}

type lineIDReq struct {
	LineID string `json:"line_id"`
}

func bindLineID(ctx *gin.Context) (string, error) {
	var req lineIDReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return "", utils.WrapErrorf(common.ErrRequestParamInvalid, "bind req fail: %s", err.Error())
	}

	if len(req.LineID) == 0 {
		return "", utils.WrapError(common.ErrRequestParamEmpty, "param line_id is empty")
	}

	return req.LineID, nil
}
