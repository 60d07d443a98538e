package bilibili

import (
	"encoding/json"
	"fmt"
	"strings"

	"Fpublisher/internal/config"
	"Fpublisher/internal/utils"

	"github.com/imroc/req/v3"
	"github.com/tidwall/gjson"
)

type storageStateCookie struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain"`
}

type storageState struct {
	Cookies []storageStateCookie `json:"cookies"`
}

func cookieHeader(cookies []storageStateCookie) string {
	var parts []string
	for _, c := range cookies {
		parts = append(parts, fmt.Sprintf("%s=%s", c.Name, c.Value))
	}
	return strings.Join(parts, "; ")
}

// ValidateSnapshotAPI 不开浏览器，直接用快照里的cookie请求导航接口验证登录态。
// 返回是否有效及账号昵称。
func ValidateSnapshotAPI(snapshot []byte) (bool, string, error) {
	if len(snapshot) == 0 {
		return false, "", fmt.Errorf("快照内容为空")
	}

	var state storageState
	if err := json.Unmarshal(snapshot, &state); err != nil {
		return false, "", fmt.Errorf("解析快照失败: %w", err)
	}
	if len(state.Cookies) == 0 {
		return false, "", fmt.Errorf("快照中没有cookie")
	}

	client := req.C().SetCommonHeaders(map[string]string{
		"user-agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
		"cookie":     cookieHeader(state.Cookies),
		"Referer":    "https://www.bilibili.com",
	})

	resp, err := client.R().Get("https://api.bilibili.com/x/web-interface/nav")
	if err != nil {
		return false, "", fmt.Errorf("请求导航接口失败: %w", err)
	}

	body := resp.Bytes()
	code := gjson.GetBytes(body, "code").Int()
	if code != 0 {
		message := gjson.GetBytes(body, "message").String()
		utils.WarnWithPlatform(config.PlatformBilibili, fmt.Sprintf("导航接口返回错误: code=%d, message=%s", code, message))
		return false, "", nil
	}

	isLogin := gjson.GetBytes(body, "data.isLogin").Bool()
	uname := gjson.GetBytes(body, "data.uname").String()
	utils.InfoWithPlatform(config.PlatformBilibili, fmt.Sprintf("导航接口验证结果: isLogin=%v, uname=%s", isLogin, uname))

	return isLogin, uname, nil
}
