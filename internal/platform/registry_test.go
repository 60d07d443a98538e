package platform_test

import (
	"testing"

	"Fpublisher/internal/config"
	"Fpublisher/internal/platform"
	_ "Fpublisher/internal/platform/all"
)

func TestRegistry(t *testing.T) {
	// 测试1: 五个平台全部注册，编号与名称对应
	t.Run("all_platforms_registered", func(t *testing.T) {
		expected := map[int]string{
			config.PlatformTypeXiaohongshu: config.PlatformXiaohongshu,
			config.PlatformTypeTencent:     config.PlatformTencent,
			config.PlatformTypeDouyin:      config.PlatformDouyin,
			config.PlatformTypeKuaishou:    config.PlatformKuaishou,
			config.PlatformTypeBilibili:    config.PlatformBilibili,
		}
		for platformType, name := range expected {
			adapter, err := platform.Get(platformType)
			if err != nil {
				t.Fatalf("平台%d未注册: %v", platformType, err)
			}
			if adapter.Name != name {
				t.Errorf("平台%d期望名称%s，实际%s", platformType, name, adapter.Name)
			}
			if adapter.Type != platformType {
				t.Errorf("平台%s编号不一致: %d != %d", name, adapter.Type, platformType)
			}
		}
	})

	// 测试2: 未知编号返回错误
	t.Run("unknown_type_errors", func(t *testing.T) {
		if _, err := platform.Get(99); err == nil {
			t.Error("未知平台编号应返回错误")
		}
	})

	// 测试3: Types升序返回1..5
	t.Run("types_sorted", func(t *testing.T) {
		types := platform.Types()
		want := []int{1, 2, 3, 4, 5}
		if len(types) != len(want) {
			t.Fatalf("期望%d个平台，实际%d个", len(want), len(types))
		}
		for i, typ := range types {
			if typ != want[i] {
				t.Errorf("第%d位期望%d，实际%d", i, want[i], typ)
			}
		}
	})

	// 测试4: 每个适配器的必填能力齐全
	t.Run("required_capabilities_present", func(t *testing.T) {
		for _, typ := range platform.Types() {
			adapter, err := platform.Get(typ)
			if err != nil {
				t.Fatalf("取平台%d失败: %v", typ, err)
			}
			if adapter.LoginEntry == "" {
				t.Errorf("%s 缺少登录入口", adapter.Name)
			}
			if adapter.ValidateURL == "" {
				t.Errorf("%s 缺少校验页面", adapter.Name)
			}
			if len(adapter.LoginMarkers) == 0 {
				t.Errorf("%s 缺少登录提示标记", adapter.Name)
			}
			if len(adapter.UploadEntries) == 0 {
				t.Errorf("%s 缺少上传入口", adapter.Name)
			}
			if len(adapter.FileInput) == 0 {
				t.Errorf("%s 缺少文件输入框候选", adapter.Name)
			}
			if len(adapter.PublishControl) == 0 {
				t.Errorf("%s 缺少发布按钮候选", adapter.Name)
			}
			if adapter.TitleMaxLen <= 0 {
				t.Errorf("%s 标题上限未配置", adapter.Name)
			}
			if len(adapter.Signals.Complete) == 0 {
				t.Errorf("%s 缺少处理完成信号", adapter.Name)
			}
		}
	})
}

func TestPlatformName(t *testing.T) {
	cases := map[int]string{
		1:  config.PlatformXiaohongshu,
		2:  config.PlatformTencent,
		3:  config.PlatformDouyin,
		4:  config.PlatformKuaishou,
		5:  config.PlatformBilibili,
		99: "",
	}
	for typ, want := range cases {
		if got := config.PlatformName(typ); got != want {
			t.Errorf("平台%d期望名称%q，实际%q", typ, want, got)
		}
	}
}
