package user

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// RegisterUseCase 用户注册用例
// 设计说明：
// 1. Application层负责用例编排，邮箱校验、密码加密在领域服务中完成
// 2. 返回领域实体，HTTP层DTO负责剔除密码字段
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Execute 执行注册，邮箱已存在返回ErrEmailDuplicate
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (u *user.User, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "RegisterUseCase.Execute")
	defer func() { tracing.EndSpan(span, err) }()

	return uc.userService.Register(ctx, req.Email, req.Password, req.FirstName, req.LastName)
}
