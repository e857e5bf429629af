package service

import (
	"strings"

	"github.com/google/uuid"
)

// 土耳其语特殊字母折叠表，slug 仅保留 ASCII
var slugFoldReplacer = strings.NewReplacer(
	"ı", "i",
	"ğ", "g",
	"ü", "u",
	"ş", "s",
	"ö", "o",
	"ç", "c",
	"İ", "i",
	"Ğ", "g",
	"Ü", "u",
	"Ş", "s",
	"Ö", "o",
	"Ç", "c",
)

// generateSlug 根据名称生成 slug，并追加 8 位随机后缀降低冲突概率。
// 唯一性由数据库唯一索引兜底，不做查重。
func generateSlug(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = slugFoldReplacer.Replace(base)

	var b strings.Builder
	lastHyphen := false
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-' || r == '_':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	suffix := uuid.NewString()[:8]
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}
