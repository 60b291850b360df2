package app

type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Ip       string `json:"-"`
	Hardware string `json:"hardware"`
}

type LoginResp struct {
	UId      int64  `json:"uid"`
	Username string `json:"username"`
	Session  string `json:"session"`
}

type RegisterReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Empire   string `json:"empire"`
	Ip       string `json:"-"`
	Hardware string `json:"hardware"`
}

type RegisterResp struct {
	UId      int64  `json:"uid"`
	Username string `json:"username"`
	Empire   string `json:"empire"`
}
