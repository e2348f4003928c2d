package handler

import (
	"corpus-annotator-backend/domain/corpus"
	"corpus-annotator-backend/domain/workbench"
	"corpus-annotator-backend/server/common"
	"corpus-annotator-backend/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StageEntity 把表单中的实体加入当前句子的暂存区
func StageEntity(ctx *gin.Context) {
	handler := stageEntityHandler{ctx: ctx}

	if err := handler.checkParam(); err != nil {
		writeError(ctx, "StageEntity", err)
		return
	}

	view, err := handler.produce()
	if err != nil {
		writeError(ctx, "StageEntity", err)
		return
	}

	ctx.JSON(http.StatusOK, common.MakeSuccessResp(view))
}

type stageEntityHandler struct {
	ctx *gin.Context

	req *stageEntityReq
}

type stageEntityReq struct {
	LineID     string `json:"line_id"`
	Occurrence string `json:"occurrence"`
	Root       string `json:"root"`
	Type       string `json:"type"`
}

func (h *stageEntityHandler) checkParam() error {
	var req stageEntityReq
	if err := h.ctx.ShouldBindJSON(&req); err != nil {
		return utils.WrapErrorf(common.ErrRequestParamInvalid, "bind req fail: %s", err.Error())
	}

	if len(req.LineID) == 0 {
		return utils.WrapError(common.ErrRequestParamEmpty, "param line_id is empty")
	}

	h.req = &req

	return nil
}

func (h *stageEntityHandler) produce() (*workbench.View, error) {
	bench, err := loadedBench(h.ctx.Request.Context(), currentUser(h.ctx).Name)
	if err != nil {
		return nil, err
	}

	view, err := bench.StageEntity(h.ctx.Request.Context(), h.req.LineID, corpus.Entity{
		Occurrence: h.req.Occurrence,
		Root:       h.req.Root,
		Type:       h.req.Type,
	})
	if err != nil {
		return nil, utils.WrapErrorf(err, "stage entity for line [%s] fail", h.req.LineID)
	}

	return view, nil
}

// StageRelation 把表单中的关系加入当前句子的暂存区
func StageRelation(ctx *gin.Context) {
	handler := stageRelationHandler{ctx: ctx}

	if err := handler.checkParam(); err != nil {
		writeError(ctx, "StageRelation", err)
		return
	}

	view, err := handler.produce()
	if err != nil {
		writeError(ctx, "StageRelation", err)
		return
	}

	ctx.JSON(http.StatusOK, common.MakeSuccessResp(view))
}

type stageRelationHandler struct {
	ctx *gin.Context

	req *stageRelationReq
}

type stageRelationReq struct {
	LineID string `json:"line_id"`
	Source string `json:"source"`
	Label  string `json:"label"`
	Target string `json:"target"`
}

func (h *stageRelationHandler) checkParam() error {
	var req stageRelationReq
	if err := h.ctx.ShouldBindJSON(&req); err != nil {
		return utils.WrapErrorf(common.ErrRequestParamInvalid, "bind req fail: %s", err.Error())
	}

	if len(req.LineID) == 0 {
		return utils.WrapError(common.ErrRequestParamEmpty, "param line_id is empty")
	}

	h.req = &req

	return nil
}

func (h *stageRelationHandler) produce() (*workbench.View, error) {
	bench, err := loadedBench(h.ctx.Request.Context(), currentUser(h.ctx).Name)
	if err != nil {
		return nil, err
	}

	view, err := bench.StageRelation(h.ctx.Request.Context(), h.req.LineID, corpus.Relation{
		Source: h.req.Source,
		Label:  h.req.Label,
		Target: h.req.Target,
	})
	if err != nil {
		return nil, utils.WrapErrorf(err, "stage relation for line [%s] fail", h.req.LineID)
	}

	return view, nil
}
