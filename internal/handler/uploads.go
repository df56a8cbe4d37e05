package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
)

// UploadPaperPDF 接收 multipart 表单中的 file 字段，只接受 10MB 以内的 PDF，
// 上传成功后返回可直接写进论文提交请求的 fileUrl
func (h *Handler) UploadPaperPDF(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	r.Body = http.MaxBytesReader(w, r.Body, h.config.MinIO.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.config.MinIO.MaxUploadBytes); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "文件过大或表单格式错误")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "请在 file 字段中提供文件")
		return
	}
	defer file.Close()

	if header.Size > h.config.MinIO.MaxUploadBytes {
		h.errorResponse(w, r, http.StatusBadRequest, "文件大小不能超过 10MB")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 不信任客户端声明的 Content-Type，按文件头判断
	if http.DetectContentType(data) != "application/pdf" {
		h.errorResponse(w, r, http.StatusBadRequest, "只接受 PDF 文件")
		return
	}

	key := fmt.Sprintf("papers/paper_%d_%s.pdf", myInfo.ID, uuid.NewString())

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.MinIO.UploadTimeout)*time.Second)
	defer cancel()

	if err := h.paperStore.Put(ctx, key, bytes.NewReader(data), int64(len(data)), "application/pdf"); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "上传成功", map[string]string{
		"fileUrl": h.paperStore.PublicURL(key),
	})
}
