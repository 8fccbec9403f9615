package util

import "errors"

var (
	ErrUserNotFound          = errors.New("用户不存在")
	ErrEmailRegistered       = errors.New("该邮箱已被注册")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrInstrumentNotFound    = errors.New("instrument not found")
	ErrInstrumentUnpublished = errors.New("instrument not published or not accessible")
	ErrSessionNotFound       = errors.New("session not found")
	ErrSessionSlotTaken      = errors.New("counselor already booked for this time")
	ErrSessionNotCancellable = errors.New("session can no longer be cancelled")
	ErrResourceNotFound      = errors.New("resource not found")
	ErrAlertNotFound         = errors.New("alert not found")
)
