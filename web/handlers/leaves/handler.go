package leaves

import (
	"net/http"

	"axiapac.com/hrms/core"
	"axiapac.com/hrms/web/common"
	"github.com/gin-gonic/gin"
)

type Endpoint struct {
	base common.Handler
}

func Register(r *gin.RouterGroup, base common.Handler) {
	endpoint := &Endpoint{base: base}
	r.GET("/leaves", endpoint.List)
	r.POST("/leaves", endpoint.Create)
	r.GET("/leaves/approved", endpoint.Approved)
	r.GET("/leaves/employee/:id", endpoint.ByEmployee)
	r.PUT("/leaves/:id", endpoint.SetStatus)
	r.DELETE("/leaves/:id", endpoint.Delete)
	r.GET("/leaves/:id/document", endpoint.Document)
}

type LeaveForm struct {
	Employee  string `form:"employee" json:"employee"`
	StartDate string `form:"startDate" json:"startDate"`
	EndDate   string `form:"endDate" json:"endDate"`
	Reason    string `form:"reason" json:"reason"`
}

type StatusDTO struct {
	Status string `json:"status" binding:"required"`
}

func (ep *Endpoint) Create(c *gin.Context) {
	var form LeaveForm
	if err := c.ShouldBind(&form); err != nil {
		common.RespondBindingError(c, err)
		return
	}

	document, closeDocument, err := common.FormUpload(c, "document", ep.base.MaxUploadBytes)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	defer closeDocument()

	leave, err := ep.base.Service.CreateLeave(c.Request.Context(), core.LeaveInput{
		EmployeeID: form.Employee,
		StartDate:  form.StartDate,
		EndDate:    form.EndDate,
		Reason:     form.Reason,
		Document:   document,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(leave))
}

func (ep *Endpoint) List(c *gin.Context) {
	leaves, err := ep.base.Service.ListLeaves(c.Request.Context(), core.LeaveFilter{Status: c.Query("status")})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewListResponse(leaves))
}

// Approved feeds the leave calendar; ?month=yyyy-MM narrows it to one month.
func (ep *Endpoint) Approved(c *gin.Context) {
	leaves, err := ep.base.Service.ApprovedLeaves(c.Request.Context(), c.Query("month"))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewListResponse(leaves))
}

func (ep *Endpoint) ByEmployee(c *gin.Context) {
	leaves, err := ep.base.Service.EmployeeLeaves(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewListResponse(leaves))
}

func (ep *Endpoint) SetStatus(c *gin.Context) {
	var dto StatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		common.RespondBindingError(c, err)
		return
	}

	leave, err := ep.base.Service.SetLeaveStatus(c.Request.Context(), c.Param("id"), dto.Status)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(leave))
}

func (ep *Endpoint) Delete(c *gin.Context) {
	if err := ep.base.Service.DeleteLeave(c.Request.Context(), c.Param("id")); err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewMessageResponse("leave deleted"))
}

func (ep *Endpoint) Document(c *gin.Context) {
	dl, err := ep.base.Service.LeaveDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.SendDownload(c, dl)
}
