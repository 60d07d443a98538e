package resolver

import (
	"errors"
	"testing"
)

func TestFirstMatch(t *testing.T) {
	// 测试1: 只有第k个候选命中时返回k，且不再求值后续候选
	t.Run("returns_first_hit_and_stops", func(t *testing.T) {
		evaluated := make([]bool, 5)
		idx := FirstMatch(5, func(i int) (int, error) {
			evaluated[i] = true
			if i == 2 {
				return 1, nil
			}
			return 0, nil
		})
		if idx != 2 {
			t.Errorf("期望命中下标2，实际为%d", idx)
		}
		if !evaluated[0] || !evaluated[1] || !evaluated[2] {
			t.Error("命中前的候选应该都被求值")
		}
		if evaluated[3] || evaluated[4] {
			t.Error("命中后的候选不应该被求值")
		}
	})

	// 测试2: 求值出错的候选按未命中跳过
	t.Run("error_candidate_skipped", func(t *testing.T) {
		idx := FirstMatch(3, func(i int) (int, error) {
			if i == 0 {
				return 0, errors.New("boom")
			}
			if i == 1 {
				return 2, nil
			}
			return 0, nil
		})
		if idx != 1 {
			t.Errorf("期望跳过出错候选命中下标1，实际为%d", idx)
		}
	})

	// 测试3: 全部未命中返回-1
	t.Run("no_match_returns_minus_one", func(t *testing.T) {
		idx := FirstMatch(4, func(i int) (int, error) {
			return 0, nil
		})
		if idx != -1 {
			t.Errorf("期望返回-1，实际为%d", idx)
		}
	})

	// 测试4: 幂等，两次求值结果一致
	t.Run("idempotent", func(t *testing.T) {
		count := func(i int) (int, error) {
			if i == 1 {
				return 3, nil
			}
			return 0, nil
		}
		first := FirstMatch(3, count)
		second := FirstMatch(3, count)
		if first != second {
			t.Errorf("两次求值结果应一致，实际为%d和%d", first, second)
		}
	})
}
