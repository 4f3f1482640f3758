package idgen

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"
)

const (
	suffixLen = 9
	alphabet  = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Generator 生成进程内唯一的字符串 ID
type Generator interface {
	NewID() string
}

// Func 允许直接用函数充当 Generator（测试里常用）
type Func func() string

func (f Func) NewID() string { return f() }

// TimeRandom 生成 "<毫秒时间戳>-<9位 base36 随机串>" 形式的 ID
type TimeRandom struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

func NewTimeRandom() *TimeRandom {
	return &TimeRandom{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

func (g *TimeRandom) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	suffix := make([]byte, suffixLen)
	for i := range suffix {
		suffix[i] = alphabet[g.rnd.Intn(len(alphabet))]
	}
	return strconv.FormatInt(g.now().UnixMilli(), 10) + "-" + string(suffix)
}

// Sequence 返回可预测的 ID：prefix-1, prefix-2, ...
type Sequence struct {
	Prefix string

	mu sync.Mutex
	n  int
}

func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", s.Prefix, s.n)
}

var Default Generator = NewTimeRandom()

// New 使用默认生成器
func New() string {
	return Default.NewID()
}
