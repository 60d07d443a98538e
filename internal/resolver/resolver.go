// Package resolver 将逻辑字段按候选定位策略的顺序解析为页面元素。
// 候选顺序由各平台配置提供，解析器只保证"第一个命中即返回"。
package resolver

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// ErrNotFound 所有候选策略均未命中
var ErrNotFound = errors.New("element not found")

// Candidate 单个定位策略
type Candidate struct {
	Desc  string // 策略描述，用于日志
	Build func(page playwright.Page) playwright.Locator
}

// FirstMatch 返回第一个计数≥1的候选下标，未命中返回-1。
// 严格按顺序求值，命中后不再求值后续候选。
func FirstMatch(n int, count func(i int) (int, error)) int {
	for i := 0; i < n; i++ {
		c, err := count(i)
		if err != nil {
			continue
		}
		if c >= 1 {
			return i
		}
	}
	return -1
}

// Resolve 按顺序尝试候选策略，返回第一个命中元素的句柄。
// 命中后尽力滚动元素进入视口，滚动失败不影响结果。
func Resolve(page playwright.Page, candidates []Candidate) (playwright.Locator, error) {
	locators := make([]playwright.Locator, len(candidates))

	idx := FirstMatch(len(candidates), func(i int) (int, error) {
		locators[i] = candidates[i].Build(page)
		return locators[i].Count()
	})
	if idx < 0 {
		return nil, fmt.Errorf("resolve: %w", ErrNotFound)
	}

	handle := locators[idx].First()
	_ = handle.ScrollIntoViewIfNeeded()
	return handle, nil
}

// ========== 常用策略构造 ==========

// Css 按CSS选择器定位
func Css(desc, selector string) Candidate {
	return Candidate{
		Desc: desc,
		Build: func(page playwright.Page) playwright.Locator {
			return page.Locator(selector)
		},
	}
}

// Text 按可见文本定位
func Text(text string) Candidate {
	return Candidate{
		Desc: "text=" + text,
		Build: func(page playwright.Page) playwright.Locator {
			return page.GetByText(text)
		},
	}
}

// Role 按ARIA角色与可见名称定位
func Role(role playwright.AriaRole, name string, exact bool) Candidate {
	return Candidate{
		Desc: fmt.Sprintf("role=%s[name=%s]", role, name),
		Build: func(page playwright.Page) playwright.Locator {
			return page.GetByRole(role, playwright.PageGetByRoleOptions{
				Name:  name,
				Exact: playwright.Bool(exact),
			})
		},
	}
}

// Placeholder 按输入框占位文本定位
func Placeholder(text string) Candidate {
	return Candidate{
		Desc: "placeholder=" + text,
		Build: func(page playwright.Page) playwright.Locator {
			return page.GetByPlaceholder(text)
		},
	}
}
