package records

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// 记录解析：三种文档类型各自独立的解析模式，互不共享状态。
// 源文件中的顺序即页面顺序。

// Kind 标识文档类型。
type Kind string

const (
	KindEntry    Kind = "entry"    // 词典词条：term/pronunciation/type/definition 四列
	KindQuote    Kind = "quote"    // 引文：每个非空行一条
	KindAuthored Kind = "authored" // 署名引文：每行至少两列，第一列引文、第二列署名
)

// ParseKind 将用户输入的文档类型字符串规范化为 Kind。
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "entry", "dictionary":
		return KindEntry, nil
	case "quote", "quotes":
		return KindQuote, nil
	case "authored", "authored-quotes", "authoredquotes":
		return KindAuthored, nil
	default:
		return "", fmt.Errorf("未知的文档类型：%s", s)
	}
}

// Entry 表示一条词典词条。
type Entry struct {
	Term          string
	Pronunciation string
	Category      string
	Definition    string
}

// Quote 表示一条无署名引文。
type Quote struct {
	Text string
}

// AuthoredQuote 表示一条带署名的引文。
type AuthoredQuote struct {
	Text   string
	Author string
}

// Record 是三种记录的标签联合，仅有与 Kind 对应的指针非空。
type Record struct {
	Kind     Kind
	Entry    *Entry
	Quote    *Quote
	Authored *AuthoredQuote
}

// entryColumns 是词条模式的必需列名。
var entryColumns = []string{"term", "pronunciation", "type", "definition"}

// Load 按文档类型从 r 中解析记录序列。
// 词条模式缺列视为配置错误，整个运行失败；引文模式逐行跳过无效行并记录警告。
func Load(r io.Reader, kind Kind, log *zap.SugaredLogger) ([]Record, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	r = stripBOM(r)
	switch kind {
	case KindEntry:
		return loadEntries(r)
	case KindQuote:
		return loadQuotes(r)
	case KindAuthored:
		return loadAuthored(r, log)
	default:
		return nil, fmt.Errorf("未知的文档类型：%s", kind)
	}
}

func loadEntries(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("词表为空，缺少表头")
	}
	if err != nil {
		return nil, fmt.Errorf("读取词表表头失败: %w", err)
	}

	index := map[string]int{}
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	missing := []string{}
	for _, col := range entryColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("词条模式缺少必需列: %s", strings.Join(missing, ", "))
	}

	field := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("读取词表失败: %w", err)
		}
		out = append(out, Record{
			Kind: KindEntry,
			Entry: &Entry{
				Term:          field(row, "term"),
				Pronunciation: field(row, "pronunciation"),
				Category:      field(row, "type"),
				Definition:    field(row, "definition"),
			},
		})
	}
	return out, nil
}

func loadQuotes(r io.Reader) ([]Record, error) {
	var out []Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		out = append(out, Record{Kind: KindQuote, Quote: &Quote{Text: text}})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("读取引文失败: %w", err)
	}
	return out, nil
}

func loadAuthored(r io.Reader, log *zap.SugaredLogger) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var out []Record
	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("读取引文失败: %w", err)
		}
		line++
		if len(row) < 2 {
			log.Warnf("第 %d 行字段不足，已跳过", line)
			continue
		}
		text := strings.TrimSpace(row[0])
		if text == "" {
			log.Warnf("第 %d 行引文为空，已跳过", line)
			continue
		}
		out = append(out, Record{
			Kind:     KindAuthored,
			Authored: &AuthoredQuote{Text: text, Author: strings.TrimSpace(row[1])},
		})
	}
	return out, nil
}

// stripBOM 去掉来源文件开头可能存在的 UTF-8 BOM。
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(3); err == nil && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		br.Discard(3)
	}
	return br
}
