package anonymizer

import "testing"

func TestContainsIdentity(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		authorName string
		want       bool
	}{
		{
			name:       "出现作者姓名",
			text:       "This paper was written by Wang Wei and colleagues.",
			authorName: "Wang Wei",
			want:       true,
		},
		{
			name:       "作者姓名大小写不同",
			text:       "wang wei proposed a novel approach.",
			authorName: "Wang Wei",
			want:       true,
		},
		{
			name:       "出现单位关键词",
			text:       "Department of Computer Science",
			authorName: "Wang Wei",
			want:       true,
		},
		{
			name:       "单位关键词大小写不同",
			text:       "SUN YAT-SEN UNIVERSITY",
			authorName: "",
			want:       true,
		},
		{
			name:       "institute 关键词",
			text:       "Institute of Software",
			authorName: "",
			want:       true,
		},
		{
			name:       "干净的文本",
			text:       "We propose a new consistency protocol for distributed systems.",
			authorName: "Wang Wei",
			want:       false,
		},
		{
			name:       "作者姓名为空时只检查关键词",
			text:       "Wang Wei proposed a novel approach.",
			authorName: "",
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsIdentity(tt.text, tt.authorName); got != tt.want {
				t.Errorf("ContainsIdentity(%q, %q) = %v，期望 %v", tt.text, tt.authorName, got, tt.want)
			}
		})
	}
}

func TestScanPDFRejectsGarbage(t *testing.T) {
	if _, err := ScanPDF([]byte("not a pdf"), "Wang Wei"); err == nil {
		t.Fatal("非 PDF 内容应该返回解析错误")
	}
}
