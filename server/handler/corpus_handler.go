package handler

import (
	"corpus-annotator-backend/domain/corpus"
	"corpus-annotator-backend/domain/workbench"
	"corpus-annotator-backend/server/common"
	"corpus-annotator-backend/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetCorpus 返回全部句子，并用它们重建当前标注人的候选词索引
func GetCorpus(ctx *gin.Context) {
	handler := corpusHandler{ctx: ctx}

	resp, err := handler.produce()
	if err != nil {
		writeError(ctx, "GetCorpus", err)
		return
	}

	ctx.JSON(http.StatusOK, common.MakeSuccessResp(resp))
}

type corpusHandler struct {
	ctx *gin.Context
}

type corpusResp struct {
	Title       string        `json:"title"`
	Rows        []corpus.Line `json:"rows"`
	Occurrences []string      `json:"occurrences"`
	Roots       []string      `json:"roots"`
}

func (h *corpusHandler) produce() (*corpusResp, error) {
	lines, err := corpus.LoadAll(h.ctx.Request.Context())
	if err != nil {
		return nil, utils.WrapError(err, "load corpus fail")
	}

	index := workbench.ForUser(currentUser(h.ctx).Name).DatasetLoaded(lines)

	return &corpusResp{
		Title:       globalSetting.CorpusTitle,
		Rows:        lines,
		Occurrences: index.Occurrences(),
		Roots:       index.Roots(),
	}, nil
}
