package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxTokenLength #话题 / @用户名 的最大字符数，超长的整体丢弃
const MaxTokenLength = 50

// 匹配 #话题 / @用户名：汉字、英文、数字、下划线、连字符
// 用户名中间允许出现 '.'，结尾的 '.' 视为标点
var (
	tagPattern     = regexp.MustCompile(`(?:^|[^\p{L}\p{N}_&])#([\p{L}\p{N}_-]+)`)
	mentionPattern = regexp.MustCompile(`(?:^|[^\p{L}\p{N}_.])@([\p{L}\p{N}_-]+(?:\.[\p{L}\p{N}_-]+)*)`)
)

// TagsFromContent 提取 #tag，转小写并按首次出现顺序去重
func TagsFromContent(content string) []string {
	return scanTokens(tagPattern, content, strings.ToLower)
}

// MentionsFromContent 提取 @username，按首次出现顺序去重，大小写保持原样
func MentionsFromContent(content string) []string {
	return scanTokens(mentionPattern, content, nil)
}

// IsMentionable 用户名能否被 @ 原样识别出来
func IsMentionable(username string) bool {
	tokens := MentionsFromContent("@" + username)
	return len(tokens) == 1 && tokens[0] == username
}

func scanTokens(re *regexp.Regexp, content string, normalize func(string) string) []string {
	matches := re.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return []string{}
	}

	seen := make(map[string]bool, len(matches))
	tokens := make([]string, 0, len(matches))
	for _, match := range matches {
		token := strings.Trim(match[1], "-_")
		if normalize != nil {
			token = normalize(token)
		}
		if token == "" || seen[token] || utf8.RuneCountInString(token) > MaxTokenLength {
			continue
		}
		seen[token] = true
		tokens = append(tokens, token)
	}
	return tokens
}
