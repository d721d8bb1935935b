// Package debug 记录逆解迭代过程并输出为 JSON、网页曲线或位姿图.
package debug

import (
	"encoding/json"
	"io"
	"sync"

	"reacher/ik"
)

// Record 记录历史求解
// 可被多个求解协程同时写入
type Record struct {
	mu      sync.Mutex
	Results []ik.Result `json:"results"` // 求解列表
}

// Update 记录一次求解
func (list *Record) Update(res ik.Result) {
	list.mu.Lock()
	defer list.mu.Unlock()
	list.Results = append(list.Results, res)
}

// Len 记录数量
func (list *Record) Len() int {
	list.mu.Lock()
	defer list.mu.Unlock()
	return len(list.Results)
}

// Snapshot 记录副本
func (list *Record) Snapshot() []ik.Result {
	list.mu.Lock()
	defer list.mu.Unlock()
	return append([]ik.Result(nil), list.Results...)
}

// Render 格式和输出内容
func (list *Record) Render(w io.Writer) error {
	return json.NewEncoder(w).Encode(struct {
		Results []ik.Result `json:"results"`
	}{list.Snapshot()})
}
