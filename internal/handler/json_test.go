package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestVersionConflict(t *testing.T) {
	h := &Handler{}

	t.Run("乐观锁没有命中行时返回 409", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPatch, "/papers/1/status", nil)

		h.versionConflict(w, r, sql.ErrNoRows, "论文状态已被其他人修改，请重试")

		if w.Code != http.StatusConflict {
			t.Errorf("状态码 = %d，期望 %d", w.Code, http.StatusConflict)
		}

		var resp Response
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("响应体解析失败: %v", err)
		}
		if resp.Success {
			t.Error("success 应该为 false")
		}
		if resp.Message != "论文状态已被其他人修改，请重试" {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("其它错误仍然返回 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPatch, "/papers/1/status", nil)

		h.versionConflict(w, r, errors.New("connection reset"), "论文状态已被其他人修改，请重试")

		if w.Code != http.StatusInternalServerError {
			t.Errorf("状态码 = %d，期望 %d", w.Code, http.StatusInternalServerError)
		}
	})
}
