package login

import (
	"context"
	"testing"
	"time"
)

func TestAwaitNavigation(t *testing.T) {
	// 测试1: 跳转信号到达后立即返回
	t.Run("signal_before_timeout", func(t *testing.T) {
		navigated := make(chan struct{})
		go func() {
			time.Sleep(20 * time.Millisecond)
			close(navigated)
		}()

		if err := awaitNavigation(context.Background(), navigated, 3*time.Second); err != nil {
			t.Errorf("信号到达后不应返回错误: %v", err)
		}
	})

	// 测试2: 无信号时按超时终止
	t.Run("timeout_without_signal", func(t *testing.T) {
		navigated := make(chan struct{})
		start := time.Now()
		err := awaitNavigation(context.Background(), navigated, 50*time.Millisecond)
		if err == nil {
			t.Fatal("超时后应返回错误")
		}
		if time.Since(start) > time.Second {
			t.Error("超时后未及时返回")
		}
	})

	// 测试3: 上下文取消优先于超时
	t.Run("context_cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := awaitNavigation(ctx, make(chan struct{}), time.Hour)
		if err == nil {
			t.Fatal("上下文取消后应返回错误")
		}
		if err != context.Canceled {
			t.Errorf("期望context.Canceled，实际%v", err)
		}
	})

	// 测试4: 已关闭的信号通道立即放行
	t.Run("already_navigated", func(t *testing.T) {
		navigated := make(chan struct{})
		close(navigated)
		if err := awaitNavigation(context.Background(), navigated, time.Millisecond); err != nil {
			t.Errorf("信号已到达时不应返回错误: %v", err)
		}
	})
}
