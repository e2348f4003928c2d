package handler

import (
	"context"
	"corpus-annotator-backend/domain/corpus"
	"corpus-annotator-backend/domain/graph"
	"corpus-annotator-backend/domain/notify"
	"corpus-annotator-backend/domain/workbench"
	"corpus-annotator-backend/logging"
	"corpus-annotator-backend/server/common"
	"corpus-annotator-backend/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

/*
Confirm 提交一句话中仍处于打开状态的标注。

	entity/relation 是开关的 value（a$b$c），未勾选的项不提交，视为拒绝；
	提交成功后清空暂存区、重新加载语料，并通知下游（RabbitMQ、Neo4j、邮件）；
	下游失败只记录日志，不影响本次确认；
*/
func Confirm(ctx *gin.Context) {
	handler := confirmHandler{ctx: ctx}

	if err := handler.checkParam(); err != nil {
		writeError(ctx, "Confirm", err)
		return
	}

	resp, err := handler.produce()
	if err != nil {
		writeError(ctx, "Confirm", err)
		return
	}

	ctx.JSON(http.StatusOK, common.MakeSuccessResp(resp))
}

type confirmHandler struct {
	ctx *gin.Context

	req  *confirmReq
	user *common.UserInfo
}

type confirmReq struct {
	LineID   string   `json:"line_id"`
	Entity   []string `json:"entity"`
	Relation []string `json:"relation"`
}

type confirmResp struct {
	Selection *workbench.Selection `json:"selection"`
	View      *workbench.View      `json:"view"`
}

func (h *confirmHandler) checkParam() error {
	var req confirmReq
	if err := h.ctx.ShouldBindJSON(&req); err != nil {
		return utils.WrapErrorf(common.ErrRequestParamInvalid, "bind req fail: %s", err.Error())
	}

	if len(req.LineID) == 0 {
		return utils.WrapError(common.ErrRequestParamEmpty, "param line_id is empty")
	}

	h.req = &req
	h.user = currentUser(h.ctx)

	return nil
}

func (h *confirmHandler) produce() (*confirmResp, error) {
	reqCtx := h.ctx.Request.Context()

	bench, err := loadedBench(reqCtx, h.user.Name)
	if err != nil {
		return nil, err
	}

	selection, err := bench.ConfirmSelected(reqCtx, h.req.LineID, h.req.Entity, h.req.Relation, h.commit)
	if err != nil {
		return nil, utils.WrapErrorf(err, "confirm line [%s] fail", h.req.LineID)
	}

	// 其他标注人的确认也要体现在候选词中
	if lines, err := corpus.LoadAll(reqCtx); err != nil {
		logging.Default().WithError(err).Warnf("reload corpus after confirm fail: %s", err.Error())
	} else {
		bench.DatasetLoaded(lines)
	}

	h.propagate(selection)

	view, err := bench.RowExpanded(reqCtx, h.req.LineID)
	if err != nil {
		return nil, utils.WrapErrorf(err, "render line [%s] fail", h.req.LineID)
	}

	return &confirmResp{
		Selection: selection,
		View:      view,
	}, nil
}

func (h *confirmHandler) commit(ctx context.Context, lineID string, selection *workbench.Selection) error {
	return corpus.Commit(ctx, lineID, h.user.Name, selection.Entities, selection.Relations)
}

func (h *confirmHandler) propagate(selection *workbench.Selection) {
	lineID := h.req.LineID
	logger := logging.Default()

	if err := notify.PublishConfirmed(lineID, h.user.Name, selection.Entities, selection.Relations); err != nil {
		logger.WithError(err).Errorf("publish confirmation fail: %s", err.Error())
	}

	if err := graph.ExportConfirmed(lineID, selection.Entities, selection.Relations); err != nil {
		logger.WithError(err).Errorf("export to graph fail: %s", err.Error())
	}

	email := h.user.Email
	go func() {
		if err := notify.SendConfirmEmail(email, lineID, selection.Entities, selection.Relations); err != nil {
			logger.WithError(err).Errorf("send confirm email fail: %s", err.Error())
		}
	}()
}

// Discard 丢弃一句话的全部暂存标注
func Discard(ctx *gin.Context) {
	lineID, err := bindLineID(ctx)
	if err != nil {
		writeError(ctx, "Discard", err)
		return
	}

	bench, err := loadedBench(ctx.Request.Context(), currentUser(ctx).Name)
	if err != nil {
		writeError(ctx, "Discard", err)
		return
	}

	view, err := bench.DiscardPending(ctx.Request.Context(), lineID)
	if err != nil {
		writeError(ctx, "Discard", utils.WrapErrorf(err, "discard line [%s] fail", lineID))
		return
	}

	ctx.JSON(http.StatusOK, common.MakeSuccessResp(view))
}
