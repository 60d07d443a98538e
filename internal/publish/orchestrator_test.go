package publish

import (
	"context"
	"testing"
	"time"
)

// tick 一次探测的两路信号
type tick struct {
	inProgress bool
	complete   bool
}

func TestWaitStable(t *testing.T) {
	// 测试1: 孤立的完成信号对不触发放行，只有连续3次稳定完成才放行
	t.Run("debounce_isolated_complete_pair", func(t *testing.T) {
		sequence := []tick{
			{inProgress: true},
			{complete: true},
			{complete: true},
			{inProgress: true},
			{complete: true},
			{complete: true},
			{complete: true},
		}
		probed := 0
		ok := waitStable(context.Background(), len(sequence), time.Millisecond, 3, func() (bool, bool) {
			s := sequence[probed]
			probed++
			return s.inProgress, s.complete
		})
		if !ok {
			t.Fatal("末尾连续3次完成后应判定稳定")
		}
		if probed != len(sequence) {
			t.Errorf("期望在第%d次探测后放行，实际第%d次", len(sequence), probed)
		}
	})

	// 测试2: 完成与进行中同时为真的探测不计入
	t.Run("complete_while_in_progress_not_counted", func(t *testing.T) {
		ok := waitStable(context.Background(), 5, time.Millisecond, 3, func() (bool, bool) {
			return true, true
		})
		if ok {
			t.Error("进行中信号为真时不应判定稳定")
		}
	})

	// 测试3: 尝试次数耗尽返回false
	t.Run("attempts_exhausted", func(t *testing.T) {
		probed := 0
		ok := waitStable(context.Background(), 10, time.Millisecond, 3, func() (bool, bool) {
			probed++
			return false, false
		})
		if ok {
			t.Error("从未完成时不应判定稳定")
		}
		if probed != 10 {
			t.Errorf("期望探测10次，实际%d次", probed)
		}
	})

	// 测试4: 刚好在最后几次凑满连续完成
	t.Run("stable_at_tail", func(t *testing.T) {
		probed := 0
		ok := waitStable(context.Background(), 6, time.Millisecond, 3, func() (bool, bool) {
			probed++
			return false, probed >= 4
		})
		if !ok {
			t.Error("最后3次连续完成应判定稳定")
		}
	})

	// 测试5: 上下文取消立即退出
	t.Run("context_cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		probed := 0
		ok := waitStable(ctx, 100, time.Millisecond, 3, func() (bool, bool) {
			probed++
			return false, true
		})
		if ok {
			t.Error("上下文取消后不应判定稳定")
		}
		if probed != 0 {
			t.Errorf("上下文已取消时不应再探测，实际探测%d次", probed)
		}
	})
}
