package handler

import (
	"context"
	"corpus-annotator-backend/domain/workbench"
	"corpus-annotator-backend/server/common"
	"corpus-annotator-backend/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

////////////// 展开 //////////////

// CheckRow 响应表格的勾选事件：收起所有行后展开被勾选的行
func CheckRow(ctx *gin.Context) {
	handleRowEvent(ctx, "CheckRow", (*workbench.Workbench).RowChecked)
}

// ExpandRow 响应表格的展开事件
func ExpandRow(ctx *gin.Context) {
	handleRowEvent(ctx, "ExpandRow", (*workbench.Workbench).RowExpanded)
}

type rowEvent = func(w *workbench.Workbench, ctx context.Context, lineID string) (*workbench.View, error)

func handleRowEvent(ctx *gin.Context, name string, event rowEvent) {
	lineID, err := bindLineID(ctx)
	if err != nil {
		writeError(ctx, name, err)
		return
	}

	bench, err := loadedBench(ctx.Request.Context(), currentUser(ctx).Name)
	if err != nil {
		writeError(ctx, name, err)
		return
	}

	view, err := event(bench, ctx.Request.Context(), lineID)
	if err != nil {
		writeError(ctx, name, utils.WrapErrorf(err, "expand line [%s] fail", lineID))
		return
	}

	ctx.JSON(http.StatusOK, common.MakeSuccessResp(view))
}

////////////// 收起与翻页 //////////////

func CollapseRow(ctx *gin.Context) {
	form := workbench.ForUser(currentUser(ctx).Name).RowCollapsed()
	ctx.JSON(http.StatusOK, common.MakeSuccessResp(form))
}

func ChangePage(ctx *gin.Context) {
	form := workbench.ForUser(currentUser(ctx).Name).PageChanged()
	ctx.JSON(http.StatusOK, common.MakeSuccessResp(form))
}

////////////// 表单 //////////////

func GetForm(ctx *gin.Context) {
	form := workbench.ForUser(currentUser(ctx).Name).Form()
	ctx.JSON(http.StatusOK, common.MakeSuccessResp(form))
}

// UpdateForm 保存浏览器中输入框的内容
func UpdateForm(ctx *gin.Context) {
	var in workbench.Inputs
	if err := ctx.ShouldBindJSON(&in); err != nil {
		writeError(ctx, "UpdateForm", utils.WrapErrorf(common.ErrRequestParamInvalid, "bind req fail: %s", err.Error()))
		return
	}

	form := workbench.ForUser(currentUser(ctx).Name).UpdateInputs(in)
	ctx.JSON(http.StatusOK, common.MakeSuccessResp(form))
}
