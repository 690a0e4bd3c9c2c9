package attendance

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
	r.GET("/attendance", endpoint.List)
	r.POST("/attendance", endpoint.Mark)
	r.GET("/attendance/daily", endpoint.Daily)
	r.GET("/attendance/export", endpoint.Export)
	r.GET("/attendance/employee/:id", endpoint.ByEmployee)
	r.PUT("/attendance/:id", endpoint.Update)
	r.DELETE("/attendance/:id", endpoint.Delete)
}

type MarkAttendanceDTO struct {
	Employee string `json:"employee" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Status   string `json:"status" binding:"required"`
	Task     string `json:"task"`
}

type StatusDTO struct {
	Status string `json:"status" binding:"required"`
}

func (ep *Endpoint) List(c *gin.Context) {
	records, err := ep.base.Service.ListAttendance(c.Request.Context(), core.AttendanceFilter{
		Date:   c.Query("date"),
		Status: c.Query("status"),
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewListResponse(records))
}

// Mark records the status of an employee for a day, replacing any earlier one.
func (ep *Endpoint) Mark(c *gin.Context) {
	var dto MarkAttendanceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		common.RespondBindingError(c, err)
		return
	}

	record, err := ep.base.Service.MarkAttendance(c.Request.Context(), core.AttendanceInput{
		EmployeeID: dto.Employee,
		Date:       dto.Date,
		Status:     dto.Status,
		Task:       dto.Task,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(record))
}

func (ep *Endpoint) Daily(c *gin.Context) {
	lines, err := ep.base.Service.DailyAttendance(c.Request.Context(), c.Query("date"))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewListResponse(lines))
}

func (ep *Endpoint) Export(c *gin.Context) {
	dl, err := ep.base.Service.ExportAttendance(c.Request.Context(), c.Query("date"))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.SendDownload(c, dl)
}

func (ep *Endpoint) ByEmployee(c *gin.Context) {
	records, err := ep.base.Service.EmployeeAttendance(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewListResponse(records))
}

func (ep *Endpoint) Update(c *gin.Context) {
	var dto StatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		common.RespondBindingError(c, err)
		return
	}

	record, err := ep.base.Service.UpdateAttendanceStatus(c.Request.Context(), c.Param("id"), dto.Status)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(record))
}

func (ep *Endpoint) Delete(c *gin.Context) {
	if err := ep.base.Service.DeleteAttendance(c.Request.Context(), c.Param("id")); err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewMessageResponse("attendance deleted"))
}
