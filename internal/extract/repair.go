package extract

import (
	"regexp"
	"strings"
)

var (
	reReasoning = regexp.MustCompile(`(?s)<think>.*?</think>`)
	reFence     = regexp.MustCompile("```[a-zA-Z]*")

	// 词字符之间的撇号属于缩写/所有格，先用占位符保护再做引号替换
	reContraction = regexp.MustCompile(`(\w)'(\w)`)
	reInnerQuote  = regexp.MustCompile(`(\w)"(\w)`)
	reTrailComma  = regexp.MustCompile(`,\s*([}\]])`)

	reBareArray  = regexp.MustCompile(`(?s)\[.*\]`)
	reBareObject = regexp.MustCompile(`(?s)\{.*\}`)
)

const apostropheMark = "\x01"

// StripReasoning 去掉模型的推理草稿段落，开标记没有闭合时整段丢弃
func StripReasoning(raw string) string {
	out := reReasoning.ReplaceAllString(raw, "")
	if idx := strings.Index(out, "<think>"); idx >= 0 {
		out = out[:idx]
	}
	return strings.TrimSpace(out)
}

// StripFences 去掉包裹输出的代码围栏标记
func StripFences(raw string) string {
	return strings.TrimSpace(reFence.ReplaceAllString(raw, ""))
}

// FindArray 定位最外层的数组区域。anchor 非空时优先要求区域内
// 出现该字段名，多个括号区域并存时可显著减少误匹配
func FindArray(raw, anchor string) (string, bool) {
	if anchor != "" {
		re, err := regexp.Compile(`(?s)\[.*"` + regexp.QuoteMeta(anchor) + `".*\]`)
		if err == nil {
			if m := re.FindString(raw); m != "" {
				return m, true
			}
		}
	}
	if m := reBareArray.FindString(raw); m != "" {
		return m, true
	}
	return "", false
}

// FindObject 定位最外层的对象区域，anchor 语义同 FindArray
func FindObject(raw, anchor string) (string, bool) {
	if anchor != "" {
		re, err := regexp.Compile(`(?s)\{.*"` + regexp.QuoteMeta(anchor) + `".*\}`)
		if err == nil {
			if m := re.FindString(raw); m != "" {
				return m, true
			}
		}
	}
	if m := reBareObject.FindString(raw); m != "" {
		return m, true
	}
	return "", false
}

// NormalizeQuotes 把宽松写法修成严格 JSON：
// 单引号转双引号（保护词内撇号）、去掉闭括号前的多余逗号、
// 转义值内部紧贴词字符的裸引号
func NormalizeQuotes(raw string) string {
	s := reContraction.ReplaceAllString(raw, "${1}"+apostropheMark+"${2}")
	s = strings.ReplaceAll(s, "'", `"`)
	s = strings.ReplaceAll(s, apostropheMark, "'")
	s = reTrailComma.ReplaceAllString(s, "$1")
	s = reInnerQuote.ReplaceAllString(s, `${1}\"${2}`)
	return s
}

var reEscapedInnerQuote = regexp.MustCompile(`(\w)\\"(\w)`)

// RepairLines 针对撇号被误换成双引号的行级修复，把值内部
// 夹在词字符之间的引号（含已转义的）还原为撇号
func RepairLines(raw string) string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		line = reEscapedInnerQuote.ReplaceAllString(line, "${1}'${2}")
		line = reInnerQuote.ReplaceAllString(line, "${1}'${2}")
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
