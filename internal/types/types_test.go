package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestTruncateTitle(t *testing.T) {
	t.Run("short_title_unchanged", func(t *testing.T) {
		pkg := &ContentPackage{Title: "测试视频"}
		if got := pkg.TruncateTitle(30); got != "测试视频" {
			t.Errorf("未超限标题不应被截断，实际%s", got)
		}
	})

	t.Run("truncates_by_runes_not_bytes", func(t *testing.T) {
		pkg := &ContentPackage{Title: "一二三四五六七八九十一二"}
		got := pkg.TruncateTitle(10)
		if got != "一二三四五六七八九十" {
			t.Errorf("中文标题应按字符数截断，实际%s", got)
		}
	})

	t.Run("exact_limit_unchanged", func(t *testing.T) {
		pkg := &ContentPackage{Title: "abcde"}
		if got := pkg.TruncateTitle(5); got != "abcde" {
			t.Errorf("刚好达到上限的标题不应被截断，实际%s", got)
		}
	})
}

func TestOpError(t *testing.T) {
	t.Run("kind_matching", func(t *testing.T) {
		err := NewTimeoutError("douyin", fmt.Errorf("等待跳转超时"))
		if !IsKind(err, ErrKindTimeout) {
			t.Error("超时错误应匹配超时分类")
		}
		if IsKind(err, ErrKindNetwork) {
			t.Error("超时错误不应匹配网络分类")
		}
	})

	t.Run("wrapped_error_still_matches", func(t *testing.T) {
		inner := NewSessionInvalidError("tencent")
		wrapped := fmt.Errorf("登录失败: %w", inner)
		if !IsKind(wrapped, ErrKindSessionInvalid) {
			t.Error("包装后的错误应仍可按分类匹配")
		}
	})

	t.Run("unwrap_preserves_cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewNetworkError("bilibili", cause)
		if !errors.Is(err, cause) {
			t.Error("错误链应保留原始原因")
		}
	})
}

func TestVerdictString(t *testing.T) {
	if VerdictLive.String() != "live" {
		t.Errorf("期望live，实际%s", VerdictLive.String())
	}
	if VerdictExpired.String() != "expired" {
		t.Errorf("期望expired，实际%s", VerdictExpired.String())
	}
}
