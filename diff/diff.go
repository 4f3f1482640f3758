// Package diff 对两段 prompt 做词级别的集合比较，并生成合并建议。
// 不是序列 diff：没有对齐，词的匹配区分大小写和标点。
package diff

import (
	"strings"

	"genvo-server/models"
)

type Result struct {
	Common  []string `json:"common"`
	OnlyInA []string `json:"onlyInA"`
	OnlyInB []string `json:"onlyInB"`
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func contains(list []string, w string) bool {
	for _, x := range list {
		if x == w {
			return true
		}
	}
	return false
}

// Prompts 比较 a、b 两段 prompt。
// Common 按 a 中首次出现的顺序去重；OnlyInA 和 OnlyInB 逐词扫描，不去重。
func Prompts(a, b string) Result {
	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	setA := wordSet(wordsA)
	setB := wordSet(wordsB)

	res := Result{Common: []string{}, OnlyInA: []string{}, OnlyInB: []string{}}
	for _, w := range wordsA {
		if _, ok := setB[w]; ok {
			if !contains(res.Common, w) {
				res.Common = append(res.Common, w)
			}
			continue
		}
		res.OnlyInA = append(res.OnlyInA, w)
	}
	for _, w := range wordsB {
		if _, ok := setA[w]; !ok {
			res.OnlyInB = append(res.OnlyInB, w)
		}
	}
	return res
}

// AutoMerge 以 a 为基础，追加 b 中没有出现在 a 里的词。
// 判断用的是子串包含而不是词集合："neon" 在 "neonlights" 里也算已存在。
// 没有可追加的词时原样返回 a。
func AutoMerge(a, b string) string {
	var extra []string
	for _, w := range strings.Split(b, " ") {
		if !strings.Contains(a, w) {
			extra = append(extra, w)
		}
	}
	if len(extra) == 0 {
		return a
	}
	return a + ", " + strings.Join(extra, " ")
}

// Combine 合并页面的初始 prompt：a 的全部词加上 b 中不在 a 词集合里的词
func Combine(a, b string) string {
	wordsA := strings.Fields(a)
	setA := wordSet(wordsA)
	merged := append([]string{}, wordsA...)
	for _, w := range strings.Fields(b) {
		if _, ok := setA[w]; !ok {
			merged = append(merged, w)
		}
	}
	return strings.Join(merged, " ")
}

type Word struct {
	Word   string `json:"word"`
	Unique bool   `json:"unique"`
}

// Highlight 标记 prompt 中每个词是否未出现在 other 中（子串判断）
func Highlight(prompt, other string) []Word {
	words := strings.Fields(prompt)
	res := make([]Word, 0, len(words))
	for _, w := range words {
		res = append(res, Word{Word: w, Unique: !strings.Contains(other, w)})
	}
	return res
}

// MergeSettings 以 a 的设置为准，时长取两者较大值
func MergeSettings(a, b models.GenerationSettings) models.GenerationSettings {
	out := a
	if b.Duration > out.Duration {
		out.Duration = b.Duration
	}
	return out
}
