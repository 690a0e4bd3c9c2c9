package employees

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
	r.GET("/employees", endpoint.List)
	r.POST("/employees", endpoint.Create)
	r.GET("/employees/export", endpoint.Export)
	r.GET("/employees/:id", endpoint.Get)
	r.PUT("/employees/:id", endpoint.Update)
	r.DELETE("/employees/:id", endpoint.Delete)
}

type EmployeeDTO struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Position   string `json:"position"`
	Department string `json:"department"`
	JoinDate   string `json:"joinDate"`
}

type EmployeeUpdateDTO struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Position   *string `json:"position,omitempty"`
	Department *string `json:"department,omitempty"`
	JoinDate   *string `json:"joinDate,omitempty"`
}

func (ep *Endpoint) List(c *gin.Context) {
	employees, err := ep.base.Service.ListEmployees(c.Request.Context(), core.EmployeeFilter{
		Position: c.Query("position"),
		Search:   c.Query("search"),
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewListResponse(employees))
}

func (ep *Endpoint) Create(c *gin.Context) {
	var dto EmployeeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		common.RespondBindingError(c, err)
		return
	}

	employee, err := ep.base.Service.CreateEmployee(c.Request.Context(), core.EmployeeInput(dto))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(employee))
}

func (ep *Endpoint) Get(c *gin.Context) {
	employee, err := ep.base.Service.GetEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(employee))
}

func (ep *Endpoint) Update(c *gin.Context) {
	var dto EmployeeUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		common.RespondBindingError(c, err)
		return
	}

	employee, err := ep.base.Service.UpdateEmployee(c.Request.Context(), c.Param("id"), core.EmployeeUpdate(dto))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(employee))
}

// Delete removes the employee together with their attendance and leave history.
func (ep *Endpoint) Delete(c *gin.Context) {
	if err := ep.base.Service.DeleteEmployee(c.Request.Context(), c.Param("id")); err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewMessageResponse("employee deleted"))
}

func (ep *Endpoint) Export(c *gin.Context) {
	dl, err := ep.base.Service.ExportEmployees(c.Request.Context())
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.SendDownload(c, dl)
}
