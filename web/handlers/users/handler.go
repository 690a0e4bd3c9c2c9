package users

import (
	"net/http"

	"axiapac.com/hrms/web/common"
	"github.com/gin-gonic/gin"
)

type Endpoint struct {
	base common.Handler
}

// Register mounts register and login on public and the profile on protected.
func Register(public, protected *gin.RouterGroup, base common.Handler) {
	endpoint := &Endpoint{base: base}
	public.POST("/users/register", endpoint.Register)
	public.POST("/users/login", endpoint.Login)
	protected.GET("/users/profile", endpoint.Profile)
}

type RegisterDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ep *Endpoint) Register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		common.RespondBindingError(c, err)
		return
	}

	result, err := ep.base.Service.Register(c.Request.Context(), dto.Name, dto.Email, dto.Password)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(result))
}

func (ep *Endpoint) Login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		common.RespondBindingError(c, err)
		return
	}

	result, err := ep.base.Service.Login(c.Request.Context(), dto.Email, dto.Password)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result))
}

func (ep *Endpoint) Profile(c *gin.Context) {
	session, ok := common.CurrentSession(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("not signed in"))
		return
	}

	user, err := ep.base.Service.Profile(c.Request.Context(), session.UserID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(user))
}
