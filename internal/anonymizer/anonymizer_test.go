package anonymizer

import (
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
)

func TestPermanentStorageError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "对象不存在",
			err:  minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404},
			want: true,
		},
		{
			name: "bucket 不存在",
			err:  minio.ErrorResponse{Code: "NoSuchBucket", StatusCode: 404},
			want: true,
		},
		{
			name: "权限错误留给重试",
			err:  minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403},
			want: false,
		},
		{
			name: "普通错误留给重试",
			err:  errors.New("connection refused"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := permanentStorageError(tt.err); got != tt.want {
				t.Errorf("permanentStorageError(%v) = %v，期望 %v", tt.err, got, tt.want)
			}
		})
	}
}
