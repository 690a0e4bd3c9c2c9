package candidates

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
	r.GET("/candidates", endpoint.List)
	r.POST("/candidates", endpoint.Create)
	r.GET("/candidates/:id", endpoint.Get)
	r.PUT("/candidates/:id", endpoint.Update)
	r.DELETE("/candidates/:id", endpoint.Delete)
	r.POST("/candidates/:id/hire", endpoint.Hire)
	r.GET("/candidates/:id/resume", endpoint.Resume)
}

type CandidateForm struct {
	Name        string          `form:"name" json:"name"`
	Email       string          `form:"email" json:"email"`
	Phone       string          `form:"phone" json:"phone"`
	Position    string          `form:"position" json:"position"`
	Experience  string          `form:"experience" json:"experience"`
	Declaration common.Checkbox `form:"declaration" json:"declaration"`
}

func (ep *Endpoint) Create(c *gin.Context) {
	var form CandidateForm
	if err := c.ShouldBind(&form); err != nil {
		common.RespondBindingError(c, err)
		return
	}

	resume, closeResume, err := common.FormUpload(c, "resume", ep.base.MaxUploadBytes)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	defer closeResume()

	candidate, err := ep.base.Service.CreateCandidate(c.Request.Context(), core.CandidateInput{
		Name:        form.Name,
		Email:       form.Email,
		Phone:       form.Phone,
		Position:    form.Position,
		Experience:  form.Experience,
		Declaration: bool(form.Declaration),
		Resume:      resume,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(candidate))
}

func (ep *Endpoint) List(c *gin.Context) {
	candidates, err := ep.base.Service.ListCandidates(c.Request.Context(), core.CandidateFilter{
		Status:   c.Query("status"),
		Position: c.Query("position"),
		Search:   c.Query("search"),
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewListResponse(candidates))
}

func (ep *Endpoint) Get(c *gin.Context) {
	candidate, err := ep.base.Service.GetCandidate(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(candidate))
}

type CandidateUpdateDTO struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Position   *string `json:"position,omitempty"`
	Experience *string `json:"experience,omitempty"`
	Status     *string `json:"status,omitempty"`
}

// Update edits fields and/or moves the candidate to a new status. Selecting a
// candidate answers with the new employee and redirect "employees".
func (ep *Endpoint) Update(c *gin.Context) {
	var dto CandidateUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		common.RespondBindingError(c, err)
		return
	}

	result, err := ep.base.Service.UpdateCandidate(c.Request.Context(), c.Param("id"), core.CandidateUpdate{
		Name:       dto.Name,
		Email:      dto.Email,
		Phone:      dto.Phone,
		Position:   dto.Position,
		Experience: dto.Experience,
		Status:     dto.Status,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result))
}

func (ep *Endpoint) Hire(c *gin.Context) {
	result, err := ep.base.Service.HireCandidate(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result))
}

func (ep *Endpoint) Delete(c *gin.Context) {
	if err := ep.base.Service.DeleteCandidate(c.Request.Context(), c.Param("id")); err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewMessageResponse("candidate deleted"))
}

func (ep *Endpoint) Resume(c *gin.Context) {
	dl, err := ep.base.Service.Resume(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.SendDownload(c, dl)
}
