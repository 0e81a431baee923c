// Package catalog 雙語食材目錄：翻譯、分類、名稱正規化與搜尋。
// 目錄在啟動時載入，之後唯讀，可被多個 goroutine 同時使用。
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"ohmycook/internal/pkg/common"
)

// MaxSearchResults 搜尋結果上限
const MaxSearchResults = 20

// Catalog 食材目錄
type Catalog struct {
	entries []common.IngredientEntry
	byKey   map[string]int
	byName  map[string]string // 正規化名稱（兩種語言）→ 正式鍵
}

// Group 依分類分組的搜尋結果
type Group struct {
	Category common.Category          `json:"category"`
	Items    []common.IngredientEntry `json:"items"`
}

var defaultCatalog = New(ingredientData)

// Default 回傳內建目錄
func Default() *Catalog {
	return defaultCatalog
}

// New 由條目建立目錄。重複的鍵或名稱以先出現者為準。
func New(entries []common.IngredientEntry) *Catalog {
	c := &Catalog{
		entries: make([]common.IngredientEntry, 0, len(entries)),
		byKey:   make(map[string]int, len(entries)),
		byName:  make(map[string]string, len(entries)*2),
	}
	for _, e := range entries {
		if _, dup := c.byKey[e.CanonicalKey]; dup {
			continue
		}
		c.byKey[e.CanonicalKey] = len(c.entries)
		c.entries = append(c.entries, e)
		for _, name := range []string{e.CanonicalKey, e.Translations.EN, e.Translations.KO} {
			n := normalize(name)
			if n == "" {
				continue
			}
			if _, taken := c.byName[n]; !taken {
				c.byName[n] = e.CanonicalKey
			}
		}
	}
	return c
}

// normalize NFC、去除多餘空白並轉小寫
func normalize(s string) string {
	return strings.ToLower(common.CollapseSpace(norm.NFC.String(s)))
}

// Entry 取得條目
func (c *Catalog) Entry(key string) (common.IngredientEntry, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return common.IngredientEntry{}, false
	}
	return c.entries[i], true
}

// Entries 回傳所有條目的副本
func (c *Catalog) Entries() []common.IngredientEntry {
	return append([]common.IngredientEntry(nil), c.entries...)
}

// Translate 翻譯顯示名稱，未知的鍵原樣回傳
func (c *Catalog) Translate(key string, lang common.Language) string {
	e, ok := c.Entry(key)
	if !ok {
		return key
	}
	if name := e.Translations.Get(lang); name != "" {
		return name
	}
	return key
}

// CategoryOf 取得分類，未知時為 others
func (c *Catalog) CategoryOf(key string) common.Category {
	if e, ok := c.Entry(key); ok {
		return e.Category
	}
	return common.CategoryOthers
}

// Emoji 取得顯示圖示
func (c *Catalog) Emoji(key string) string {
	if e, ok := c.Entry(key); ok {
		return e.Emoji
	}
	return ""
}

// ResolveCanonicalKey 以任一語言名稱做不分大小寫的完全比對
func (c *Catalog) ResolveCanonicalKey(text string) (string, bool) {
	key, ok := c.byName[normalize(text)]
	return key, ok
}

// Search 兩種語言的子字串比對，不分大小寫。
// 完全相符優先，其次前綴相符，其餘依目錄順序；排除 exclude 中的鍵，最多 MaxSearchResults 筆。
// 空白查詢沒有結果。
func (c *Catalog) Search(query string, exclude map[string]bool) []common.IngredientEntry {
	q := normalize(query)
	if q == "" {
		return []common.IngredientEntry{}
	}

	type hit struct {
		idx  int
		rank int
	}
	hits := make([]hit, 0, len(c.entries))
	for i, e := range c.entries {
		if exclude[e.CanonicalKey] {
			continue
		}
		best := -1
		for _, name := range []string{e.Translations.EN, e.Translations.KO} {
			n := normalize(name)
			var r int
			switch {
			case n == q:
				r = 0
			case strings.HasPrefix(n, q):
				r = 1
			case strings.Contains(n, q):
				r = 2
			default:
				continue
			}
			if best < 0 || r < best {
				best = r
			}
		}
		if best >= 0 {
			hits = append(hits, hit{idx: i, rank: best})
		}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].rank < hits[b].rank
	})
	if len(hits) > MaxSearchResults {
		hits = hits[:MaxSearchResults]
	}

	out := make([]common.IngredientEntry, len(hits))
	for i, h := range hits {
		out[i] = c.entries[h.idx]
	}
	return out
}

// GroupByCategory 依固定分類順序分組，組內維持原順序，空分類省略
func GroupByCategory(entries []common.IngredientEntry) []Group {
	buckets := make(map[common.Category][]common.IngredientEntry)
	for _, e := range entries {
		cat := e.Category
		if cat == "" {
			cat = common.CategoryOthers
		}
		buckets[cat] = append(buckets[cat], e)
	}
	groups := make([]Group, 0, len(buckets))
	for _, cat := range common.CategoryOrder {
		if items := buckets[cat]; len(items) > 0 {
			groups = append(groups, Group{Category: cat, Items: items})
		}
	}
	return groups
}

// CommonIngredients 常用食材鍵
func CommonIngredients() []string {
	return append([]string(nil), commonIngredients...)
}
