package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/riskbases/riskbases/dao/model"
	"github.com/riskbases/riskbases/internal/payload"
	"github.com/riskbases/riskbases/internal/resputil"
	"github.com/riskbases/riskbases/internal/util"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewUserMgr)
}

type UserMgr struct {
	name string
	db   *gorm.DB
}

func NewUserMgr(conf *RegisterConfig) Manager {
	return &UserMgr{
		name: "users",
		db:   conf.DB,
	}
}

func (mgr *UserMgr) GetName() string { return mgr.name }

func (mgr *UserMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *UserMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("/me", mgr.Me)
	g.PUT("/me", mgr.UpdateMe)
}

func (mgr *UserMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.GET("", mgr.ListForAdmin)
	g.PUT("/:id/role", mgr.UpdateRole)
	g.DELETE("/:id", mgr.Delete)
}

type (
	UserResp struct {
		ID       uint       `json:"id"`
		Name     string     `json:"name"`
		Nickname *string    `json:"nickname"`
		Email    *string    `json:"email"`
		Role     model.Role `json:"role"`
	}

	UpdateMeReq struct {
		Nickname *string `json:"nickname" binding:"omitempty,max=64"`
		Email    *string `json:"email" binding:"omitempty,email"`
	}

	UserListReq struct {
		PageIndex *int           `form:"pageIndex" binding:"required"`
		PageSize  *int           `form:"pageSize" binding:"required"`
		NameLike  *string        `form:"nameLike"`
		Order     *payload.Order `form:"order"`
	}

	UserIDReq struct {
		ID uint `uri:"id" binding:"required"`
	}

	UpdateRoleReq struct {
		Role model.Role `json:"role" binding:"required,oneof=1 2 3"`
	}
)

func toUserResp(u *model.User) UserResp {
	return UserResp{
		ID:       u.ID,
		Name:     u.Name,
		Nickname: u.Nickname,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// Me godoc
// @Summary Current user profile
// @Tags User
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[UserResp] "profile"
// @Router /v1/users/me [get]
func (mgr *UserMgr) Me(c *gin.Context) {
	token := util.GetToken(c)
	var user model.User
	err := mgr.db.WithContext(c).Where("id = ?", token.UserID).First(&user).Error
	if err != nil {
		resputil.HTTPError(c, 404, "User not found", resputil.NotFound)
		return
	}
	resputil.Success(c, toUserResp(&user))
}

// UpdateMe godoc
// @Summary Update the current user's profile
// @Tags User
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body UpdateMeReq true "profile fields"
// @Success 200 {object} resputil.Response[UserResp] "updated profile"
// @Failure 400 {object} resputil.Response[any] "Request parameter error"
// @Router /v1/users/me [put]
func (mgr *UserMgr) UpdateMe(c *gin.Context) {
	token := util.GetToken(c)
	var req UpdateMeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var user model.User
	err := mgr.db.WithContext(c).Where("id = ?", token.UserID).First(&user).Error
	if err != nil {
		resputil.HTTPError(c, 404, "User not found", resputil.NotFound)
		return
	}
	if req.Nickname != nil {
		user.Nickname = req.Nickname
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if err := mgr.db.WithContext(c).Save(&user).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, toUserResp(&user))
}

// ListForAdmin godoc
// @Summary List all users
// @Description Paged and filtered user list for platform admins
// @Tags User
// @Produce json
// @Security Bearer
// @Param page query UserListReq true "paging"
// @Success 200 {object} resputil.Response[payload.ListResp[UserResp]] "users"
// @Failure 400 {object} resputil.Response[any] "Request parameter error"
// @Router /v1/admin/users [get]
func (mgr *UserMgr) ListForAdmin(c *gin.Context) {
	var req UserListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	q := mgr.db.WithContext(c).Model(&model.User{})
	if req.NameLike != nil {
		q = q.Where("name LIKE ?", "%"+*req.NameLike+"%")
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	order := "id DESC"
	if req.Order != nil && *req.Order == payload.Asc {
		order = "id ASC"
	}

	var users []model.User
	err := q.Order(order).
		Offset((*req.PageIndex) * (*req.PageSize)).
		Limit(*req.PageSize).
		Find(&users).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	rows := make([]UserResp, len(users))
	for i := range users {
		rows[i] = toUserResp(&users[i])
	}
	resputil.Success(c, payload.ListResp[UserResp]{Rows: rows, Count: count})
}

// UpdateRole godoc
// @Summary Change a user's platform role
// @Tags User
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "user id"
// @Param data body UpdateRoleReq true "new role"
// @Success 200 {object} resputil.Response[UserResp] "updated user"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/admin/users/{id}/role [put]
func (mgr *UserMgr) UpdateRole(c *gin.Context) {
	var uri UserIDReq
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req UpdateRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	token := util.GetToken(c)
	if uri.ID == token.UserID {
		resputil.BadRequestError(c, "Cannot change your own role")
		return
	}

	var user model.User
	err := mgr.db.WithContext(c).Where("id = ?", uri.ID).First(&user).Error
	if err != nil {
		resputil.HTTPError(c, 404, "User not found", resputil.NotFound)
		return
	}
	user.Role = req.Role
	if err := mgr.db.WithContext(c).Save(&user).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, toUserResp(&user))
}

// Delete godoc
// @Summary Delete a user account
// @Tags User
// @Produce json
// @Security Bearer
// @Param id path int true "user id"
// @Success 200 {object} resputil.Response[string] "deleted"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/admin/users/{id} [delete]
func (mgr *UserMgr) Delete(c *gin.Context) {
	var uri UserIDReq
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	token := util.GetToken(c)
	if uri.ID == token.UserID {
		resputil.BadRequestError(c, "Cannot delete your own account")
		return
	}

	err := mgr.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", uri.ID).Delete(&model.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("user_id = ?", uri.ID).Delete(&model.WorkspaceMember{}).Error
	})
	if err == gorm.ErrRecordNotFound {
		resputil.HTTPError(c, 404, "User not found", resputil.NotFound)
		return
	}
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, "")
}
