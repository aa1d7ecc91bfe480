// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a backend failure categorized by HTTP status. Message is
// the backend-provided detail when the response carried one, otherwise
// the category's user-facing text.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend: %d %s", e.Status, e.Message)
}

// statusMessages maps response statuses to the notification text shown
// to the operator. Matches the categories the admin UI has always used.
var statusMessages = map[int]string{
	http.StatusBadRequest:          "Dữ liệu không hợp lệ, vui lòng kiểm tra lại",
	http.StatusUnauthorized:        "Phiên làm việc đã hết hạn, vui lòng đăng nhập lại",
	http.StatusForbidden:           "Bạn không có quyền thực hiện thao tác này",
	http.StatusNotFound:            "Dữ liệu không tồn tại hoặc đã bị xóa",
	http.StatusUnprocessableEntity: "Dữ liệu không đúng định dạng, vui lòng kiểm tra lại",
	http.StatusInternalServerError: "Lỗi máy chủ, vui lòng thử lại sau",
}

// defaultMessage is used for statuses outside the known taxonomy.
const defaultMessage = "Đã xảy ra lỗi, vui lòng thử lại sau"

// newError builds a typed error from a failed response, preferring a
// message supplied by the backend in the body.
func newError(status int, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return &Error{Status: status, Message: msg}
		}
		if msg := strings.TrimSpace(payload.Error); msg != "" {
			return &Error{Status: status, Message: msg}
		}
	}
	if msg, ok := statusMessages[status]; ok {
		return &Error{Status: status, Message: msg}
	}
	return &Error{Status: status, Message: defaultMessage}
}

// UserMessage maps any error to the notification text for the
// operator. Typed backend errors keep their category message; anything
// else (network failure, context cancellation) gets the generic text.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return defaultMessage
}

// IsUnauthorized reports whether the error is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether the error is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
