package handler

import (
	"corpus-annotator-backend/domain/corpus"
	"corpus-annotator-backend/domain/graph"
	"corpus-annotator-backend/server/common"
	"corpus-annotator-backend/utils"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// IngestLines 导入外部分析器产出的句子，已存在的句子只更新分析结果
func IngestLines(ctx *gin.Context) {
	handler := ingestHandler{ctx: ctx}

	if err := handler.checkParam(); err != nil {
		writeError(ctx, "IngestLines", err)
		return
	}

	resp, err := handler.produce()
	if err != nil {
		writeError(ctx, "IngestLines", err)
		return
	}

	ctx.JSON(http.StatusOK, common.MakeSuccessResp(resp))
}

type ingestHandler struct {
	ctx *gin.Context

	lines []corpus.Line
}

type ingestResp struct {
	Count int `json:"count"`
}

func (h *ingestHandler) checkParam() error {
	var lines []corpus.Line
	if err := h.ctx.ShouldBindJSON(&lines); err != nil {
		return utils.WrapErrorf(common.ErrRequestParamInvalid, "bind req fail: %s", err.Error())
	}

	if len(lines) == 0 {
		return utils.WrapError(common.ErrRequestParamEmpty, "no line to ingest")
	}

	h.lines = lines

	return nil
}

func (h *ingestHandler) produce() (*ingestResp, error) {
	if err := corpus.Upsert(h.ctx.Request.Context(), h.lines); err != nil {
		return nil, utils.WrapError(err, "save lines fail")
	}

	return &ingestResp{Count: len(h.lines)}, nil
}

const (
	exportKindEntity   = "entity"
	exportKindRelation = "relation"
)

// Export 以 CSV 导出全部已确认的实体或关系，?kind=entity|relation
func Export(ctx *gin.Context) {
	kind := ctx.DefaultQuery("kind", exportKindEntity)
	if kind != exportKindEntity && kind != exportKindRelation {
		writeError(ctx, "Export", utils.WrapErrorf(common.ErrRequestParamInvalid, "unknown kind %#v", kind))
		return
	}

	lines, err := corpus.LoadAll(ctx.Request.Context())
	if err != nil {
		writeError(ctx, "Export", utils.WrapError(err, "load corpus fail"))
		return
	}

	entityCSV, relationCSV, err := graph.TransLinesToCSV(lines)
	if err != nil {
		writeError(ctx, "Export", err)
		return
	}

	content := entityCSV
	if kind == exportKindRelation {
		content = relationCSV
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", kind))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", content)
}
