package schedule

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNextDay(t *testing.T) {
	// 测试1: 从明天开始按默认时段排期
	t.Run("starts_from_next_day", func(t *testing.T) {
		times, err := NextDay(3, 1, nil, 0)
		if err != nil {
			t.Fatalf("生成排期失败: %v", err)
		}
		if len(times) != 3 {
			t.Fatalf("期望3个时间点，实际%d个", len(times))
		}

		tomorrow := time.Now().AddDate(0, 0, 1)
		if times[0].Day() != tomorrow.Day() {
			t.Errorf("首个时间点应落在明天，实际%v", times[0])
		}
		if times[0].Hour() != 6 {
			t.Errorf("默认首个时段应为6点，实际%d点", times[0].Hour())
		}
		// 每天1个视频时后续时间点逐日顺延
		if !times[1].After(times[0]) || !times[2].After(times[1]) {
			t.Error("排期时间应单调递增")
		}
	})

	// 测试2: 每天多个视频时按时段轮转
	t.Run("multiple_per_day_rotates_slots", func(t *testing.T) {
		times, err := NextDay(4, 2, []string{"9:30", "18:00"}, 0)
		if err != nil {
			t.Fatalf("生成排期失败: %v", err)
		}
		if times[0].Hour() != 9 || times[0].Minute() != 30 {
			t.Errorf("第1个时间点期望9:30，实际%02d:%02d", times[0].Hour(), times[0].Minute())
		}
		if times[1].Hour() != 18 {
			t.Errorf("第2个时间点期望18:00，实际%d点", times[1].Hour())
		}
		if times[0].Day() != times[1].Day() {
			t.Error("同一天的两个视频应落在同一天")
		}
		if times[2].Day() == times[0].Day() && times[2].Month() == times[0].Month() {
			t.Error("第3个视频应顺延到下一天")
		}
	})

	// 测试3: 顺延天数生效
	t.Run("start_days_offset", func(t *testing.T) {
		base, err := NextDay(1, 1, []string{"12"}, 0)
		if err != nil {
			t.Fatalf("生成排期失败: %v", err)
		}
		offset, err := NextDay(1, 1, []string{"12"}, 2)
		if err != nil {
			t.Fatalf("生成排期失败: %v", err)
		}
		if diff := offset[0].Sub(base[0]); diff != 48*time.Hour {
			t.Errorf("顺延2天期望相差48小时，实际%v", diff)
		}
	})

	// 测试4: 非法参数
	t.Run("invalid_arguments", func(t *testing.T) {
		if _, err := NextDay(3, 0, nil, 0); err == nil {
			t.Error("videos_per_day为0应报错")
		}
		if _, err := NextDay(3, 6, nil, 0); err == nil {
			t.Error("videos_per_day超过时段数应报错")
		}
		if _, err := NextDay(1, 1, []string{"abc"}, 0); err == nil {
			t.Error("无法解析的时段应报错")
		}
	})
}

func TestTitleAndHashtags(t *testing.T) {
	dir := t.TempDir()
	videoPath := filepath.Join(dir, "demo.mp4")
	txtPath := filepath.Join(dir, "demo.txt")

	content := "这是一个测试标题\n#测试 #自动发布 #golang\n"
	if err := os.WriteFile(txtPath, []byte(content), 0644); err != nil {
		t.Fatalf("写入伴随文件失败: %v", err)
	}

	title, hashtags, err := TitleAndHashtags(videoPath)
	if err != nil {
		t.Fatalf("读取伴随文件失败: %v", err)
	}
	if title != "这是一个测试标题" {
		t.Errorf("标题解析错误: %s", title)
	}
	if len(hashtags) != 3 {
		t.Fatalf("期望3个标签，实际%d个", len(hashtags))
	}
	if hashtags[0] != "测试" || hashtags[2] != "golang" {
		t.Errorf("标签解析错误: %v", hashtags)
	}

	t.Run("missing_sidecar_errors", func(t *testing.T) {
		if _, _, err := TitleAndHashtags(filepath.Join(dir, "nope.mp4")); err == nil {
			t.Error("伴随文件不存在应报错")
		}
	})
}
