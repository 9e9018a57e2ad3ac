package user

import (
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/listing"
)

// User 用户实体（聚合根）
// DDD设计说明：
// 1. 邮箱是业务唯一键
// 2. Password只保存bcrypt哈希，任何对外返回的数据都不能带上它（HTTP层DTO负责剔除）
// 3. 领域实体不依赖GORM tag
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
)

// ListSpec 用户列表在名和姓之间做OR搜索
var ListSpec = listing.Spec{
	SearchFields: []string{FieldFirstName, FieldLastName},
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是加密后的密码
func NewUser(email, hashedPassword, firstName, lastName string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOwnedBy 是否是调用者本人
func (u *User) IsOwnedBy(callerID uint) bool {
	return u.ID == callerID
}
