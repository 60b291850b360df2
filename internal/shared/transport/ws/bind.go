package ws

import (
	"encoding/json"
	"errors"
)

var errEmptyBody = errors.New("ws request body is nil")

// BindJSON 将 WsMsgReq.Body.Msg 反序列化到目标结构体。
// Msg 经过一轮 json 解码后是 map/slice/基础类型，回编再解是
// 最省事的结构化绑定方式，消息体都很小。
func BindJSON(req *WsMsgReq, dst any) error {
	if req == nil || req.Body == nil {
		return errEmptyBody
	}
	raw, err := json.Marshal(req.Body.Msg)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
