package anonymizer

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// 匿名化检测：扫描 PDF 的每一页文本，寻找作者姓名或疑似单位信息
// 命中时论文需要人工复核，但不影响后续的任何状态流转

var affiliationPattern = regexp.MustCompile(`(?i)(affiliation|department|university|institute|college)`)

// ContainsIdentity 检查一段文本中是否出现作者姓名或单位关键词
func ContainsIdentity(text string, authorName string) bool {
	if authorName != "" && strings.Contains(strings.ToLower(text), strings.ToLower(authorName)) {
		return true
	}
	return affiliationPattern.MatchString(text)
}

// ScanPDF 逐页提取文本并检测作者信息，返回是否需要人工复核
// 解析失败的页面直接跳过，不让个别坏页导致整个任务失败
func ScanPDF(data []byte, authorName string) (bool, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false, err
	}

	needsReview := false
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if ContainsIdentity(text, authorName) {
			needsReview = true
		}
	}

	return needsReview, nil
}
