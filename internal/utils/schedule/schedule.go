// Package schedule 生成批量发布的定时时间表，并解析视频的标题/标签伴随文件。
package schedule

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// 未指定时段时使用的默认发布时段（小时）
var defaultDailyTimes = []string{"6", "11", "14", "16", "22"}

// NextDay 从明天起为totalVideos个视频生成发布时间，每天videosPerDay个。
// dailyTimes元素支持"HH:mm"或纯小时字符串，为空使用默认时段；
// startDays表示再顺延的天数。
func NextDay(totalVideos, videosPerDay int, dailyTimes []string, startDays int) ([]time.Time, error) {
	if videosPerDay <= 0 {
		return nil, fmt.Errorf("videos_per_day 必须为正整数")
	}
	if len(dailyTimes) == 0 {
		dailyTimes = defaultDailyTimes
	}
	if videosPerDay > len(dailyTimes) {
		return nil, fmt.Errorf("videos_per_day 不能超过每日时段数 %d", len(dailyTimes))
	}

	slots := make([][2]int, len(dailyTimes))
	for i, s := range dailyTimes {
		hour, minute, err := parseSlot(s)
		if err != nil {
			return nil, err
		}
		slots[i] = [2]int{hour, minute}
	}

	now := time.Now()
	schedule := make([]time.Time, 0, totalVideos)
	for video := 0; video < totalVideos; video++ {
		day := video/videosPerDay + startDays + 1 // 从明天开始
		slot := slots[video%videosPerDay]
		target := now.AddDate(0, 0, day)
		schedule = append(schedule, time.Date(
			target.Year(), target.Month(), target.Day(),
			slot[0], slot[1], 0, 0, time.Local,
		))
	}
	return schedule, nil
}

// parseSlot 解析"HH:mm"或纯小时的时段表示
func parseSlot(s string) (int, int, error) {
	s = strings.TrimSpace(s)
	if hh, mm, ok := strings.Cut(s, ":"); ok {
		hour, err := strconv.Atoi(hh)
		if err != nil {
			return 0, 0, fmt.Errorf("无效的时段: %s", s)
		}
		minute, err := strconv.Atoi(mm)
		if err != nil {
			return 0, 0, fmt.Errorf("无效的时段: %s", s)
		}
		return hour, minute, nil
	}
	hour, err := strconv.Atoi(s)
	if err != nil {
		return 0, 0, fmt.Errorf("无效的时段: %s", s)
	}
	return hour, 0, nil
}

// TitleAndHashtags 读取视频同名txt伴随文件：
// 第一行是标题，第二行是空格分隔的标签（#前缀会被去掉）。
func TitleAndHashtags(videoPath string) (string, []string, error) {
	txtPath := strings.TrimSuffix(videoPath, ".mp4") + ".txt"
	content, err := os.ReadFile(txtPath)
	if err != nil {
		return "", nil, fmt.Errorf("读取伴随文件失败: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	title := strings.TrimSpace(lines[0])

	var hashtags []string
	if len(lines) > 1 {
		for _, tag := range strings.Fields(strings.ReplaceAll(lines[1], "#", "")) {
			hashtags = append(hashtags, tag)
		}
	}
	return title, hashtags, nil
}
