package domain

import "time"

// User 账号主档。uid 由雪花算法分配，同时作为 Mongo 侧王国文档的主键。
type User struct {
	UId      int64     `gorm:"column:uid;primaryKey;comment:玩家ID" json:"uid"`
	Username string    `gorm:"column:username;type:varchar(20);uniqueIndex;not null;comment:用户名" json:"username"`
	Passcode string    `gorm:"column:passcode;type:varchar(255);comment:安全码" json:"passcode"`
	Passwd   string    `gorm:"column:passwd;type:varchar(255);comment:密码" json:"passwd"`
	Hardware string    `gorm:"column:hardware;type:varchar(100);comment:硬件指纹" json:"hardware"`
	Status   int       `gorm:"column:status;default:1;comment:状态 1正常 0禁用" json:"status"`
	Ctime    time.Time `gorm:"column:ctime;autoCreateTime;comment:创建时间" json:"ctime"`
	Mtime    time.Time `gorm:"column:mtime;autoUpdateTime;comment:更新时间" json:"mtime"`
}

func (User) TableName() string {
	return "user_info"
}

func (u User) CheckPassword(pwd string, encrypt func(plaintext, passcode string) string) bool {
	if pwd == "" {
		return false
	}
	return encrypt(pwd, u.Passcode) == u.Passwd
}
