package utils

import (
	"fmt"
	"sync"
	"time"
)

const (
	// 2024-01-01 00:00:00 UTC，单位毫秒
	snowflakeEpochMilli int64 = 1704067200000

	nodeBits uint8 = 10
	seqBits  uint8 = 12

	maxNodeID int64 = -1 ^ (-1 << nodeBits)
	maxSeq    int64 = -1 ^ (-1 << seqBits)

	nodeShift uint8 = seqBits
	timeShift uint8 = nodeBits + seqBits
)

type Snowflake struct {
	mu     sync.Mutex
	nodeID int64
	lastTS int64
	seq    int64
}

func NewSnowflake(nodeID int64) (*Snowflake, error) {
	if nodeID < 0 || nodeID > maxNodeID {
		return nil, fmt.Errorf("snowflake node id out of range: %d", nodeID)
	}
	return &Snowflake{nodeID: nodeID}, nil
}

// Next 生成单调递增的全局 id。同一毫秒内序列满了就自旋到下一毫秒。
func (s *Snowflake) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixMilli()
	if now < s.lastTS {
		// 时钟回拨：停留在 lastTS 上继续用序列号
		now = s.lastTS
	}
	if now == s.lastTS {
		s.seq = (s.seq + 1) & maxSeq
		if s.seq == 0 {
			for now <= s.lastTS {
				now = time.Now().UnixMilli()
			}
		}
	} else {
		s.seq = 0
	}
	s.lastTS = now

	return (now-snowflakeEpochMilli)<<timeShift | s.nodeID<<nodeShift | s.seq
}
