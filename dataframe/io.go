package dataframe

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/Pilo-pillow/dataclean/series"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// LoadOption 是用于配置加载选项的函数类型。
type LoadOption func(*loadOptions)

// loadOptions结构包含加载DataFrame时的各种选项。
type loadOptions struct {
	defaultType series.Type            // 默认系列类型
	detectTypes bool                   // 是否自动检测系列类型
	hasHeader   bool                   // 是否有表头
	names       []string               // 系列名列表
	nanValues   []string               // 视为缺失值的字符串
	delimiter   rune                   // 分隔符
	lazyQuotes  bool                   // 懒惰引号模式
	comment     rune                   // 注释符号
	encoding    string                 // 输入编码
	types       map[string]series.Type // 系列类型映射表
}

func defaultLoadOptions() loadOptions {
	return loadOptions{
		defaultType: series.String,
		detectTypes: true,
		hasHeader:   true,
		nanValues:   []string{"NA", "NaN", "<nil>"},
		delimiter:   ',',
	}
}

// DefaultType 函数返回一个LoadOption，用于设置默认列类型。
func DefaultType(t series.Type) LoadOption {
	return func(c *loadOptions) {
		c.defaultType = t
	}
}

// DetectTypes 函数返回一个LoadOption，用于启用或禁用类型检测。
func DetectTypes(b bool) LoadOption {
	return func(c *loadOptions) {
		c.detectTypes = b
	}
}

// HasHeader 函数返回一个LoadOption，用于设置是否包含表头。
func HasHeader(b bool) LoadOption {
	return func(c *loadOptions) {
		c.hasHeader = b
	}
}

// Names 函数返回一个LoadOption，用于设置列名。
func Names(names ...string) LoadOption {
	return func(c *loadOptions) {
		c.names = names
	}
}

// NaNValues 函数返回一个LoadOption，用于设置视为缺失值的字符串。
func NaNValues(nanValues []string) LoadOption {
	return func(c *loadOptions) {
		c.nanValues = nanValues
	}
}

// WithTypes 函数返回一个LoadOption，用于设置列的具体类型。
func WithTypes(coltypes map[string]series.Type) LoadOption {
	return func(c *loadOptions) {
		c.types = coltypes
	}
}

// WithDelimiter 函数返回一个LoadOption，用于设置分隔符。
func WithDelimiter(b rune) LoadOption {
	return func(c *loadOptions) {
		c.delimiter = b
	}
}

// WithLazyQuotes 函数返回一个LoadOption，用于设置是否启用惰性引号。
func WithLazyQuotes(b bool) LoadOption {
	return func(c *loadOptions) {
		c.lazyQuotes = b
	}
}

// WithComments 函数返回一个LoadOption，用于设置注释字符。
func WithComments(b rune) LoadOption {
	return func(c *loadOptions) {
		c.comment = b
	}
}

// WithEncoding 设置 ReadCSV 输入的字符编码，支持 utf-8、gbk、gb2312 和 gb18030。
func WithEncoding(name string) LoadOption {
	return func(c *loadOptions) {
		c.encoding = name
	}
}

// decodeReader 按配置的编码把输入转换为 UTF-8。
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		return r, nil
	case "gbk", "gb2312":
		return transform.NewReader(r, simplifiedchinese.GBK.NewDecoder()), nil
	case "gb18030":
		return transform.NewReader(r, simplifiedchinese.GB18030.NewDecoder()), nil
	}
	return nil, fmt.Errorf("不支持的编码: %s", encoding)
}

// parseType 将字符串类型映射为 series.Type。
func parseType(s string) (series.Type, error) {
	switch s {
	case "float", "float64", "float32":
		return series.Float, nil
	case "int", "int64", "int32", "int16", "int8":
		return series.Int, nil
	case "string":
		return series.String, nil
	case "bool":
		return series.Bool, nil
	case "object":
		return series.Object, nil
	}
	return "", fmt.Errorf("类型 (%s) 不受支持", s)
}

// LoadRecords 从字符串切片记录加载 DataFrame。
func LoadRecords(records [][]string, options ...LoadOption) DataFrame {
	cfg := defaultLoadOptions()
	for _, option := range options {
		option(&cfg)
	}

	if len(records) == 0 {
		return DataFrame{Err: fmt.Errorf("load records: 空 DataFrame")}
	}
	if cfg.hasHeader && len(records) <= 1 {
		return DataFrame{Err: fmt.Errorf("load records: 空 DataFrame")}
	}
	if cfg.names != nil && len(cfg.names) != len(records[0]) {
		if len(cfg.names) > len(records[0]) {
			return DataFrame{Err: fmt.Errorf("load records: 列名过多")}
		}
		return DataFrame{Err: fmt.Errorf("load records: 列名不足")}
	}

	headers := make([]string, len(records[0]))
	if cfg.hasHeader {
		headers = records[0]
		records = records[1:]
	}
	if cfg.names != nil {
		headers = cfg.names
	}

	columns := make([]series.Series, len(headers))
	for i, colname := range headers {
		rawcol := make([]string, len(records))
		for j, record := range records {
			if i >= len(record) {
				return DataFrame{Err: fmt.Errorf("load records: 第 %d 行列数不足", j)}
			}
			rawcol[j] = record[i]
			if findInStringSlice(rawcol[j], cfg.nanValues) != -1 {
				rawcol[j] = "NaN"
			}
		}

		t, ok := cfg.types[colname]
		if !ok {
			t = cfg.defaultType
			if cfg.detectTypes {
				if l, err := findType(rawcol); err == nil {
					t = l
				}
			}
		}
		columns[i] = series.New(rawcol, t, colname)
	}
	nrows, _, err := checkColumnsDimensions(columns...)
	if err != nil {
		return DataFrame{Err: err}
	}
	return build(columns, nrows)
}

// findType 查找字符串切片的元素类型，返回对应的 series.Type。
func findType(arr []string) (series.Type, error) {
	var hasFloats, hasInts, hasBools, hasStrings bool
	for _, str := range arr {
		if str == "" || str == "NaN" {
			continue
		}
		if _, err := strconv.Atoi(str); err == nil {
			hasInts = true
			continue
		}
		if _, err := strconv.ParseFloat(str, 64); err == nil {
			hasFloats = true
			continue
		}
		if str == "true" || str == "false" {
			hasBools = true
			continue
		}
		hasStrings = true
	}

	switch {
	case hasStrings:
		return series.String, nil
	case hasBools && (hasInts || hasFloats):
		return series.String, nil
	case hasBools:
		return series.Bool, nil
	case hasFloats:
		return series.Float, nil
	case hasInts:
		return series.Int, nil
	}
	return series.String, fmt.Errorf("无法检测到类型")
}

// LoadMaps 从 map 数组加载 DataFrame。列按名称排序，缺少的键视为缺失值。
func LoadMaps(maps []map[string]interface{}, options ...LoadOption) DataFrame {
	if len(maps) == 0 {
		return DataFrame{Err: fmt.Errorf("load maps: 空数组")}
	}
	cfg := defaultLoadOptions()
	for _, option := range options {
		option(&cfg)
	}

	seen := make(map[string]struct{})
	var colnames []string
	for _, m := range maps {
		for k := range m {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				colnames = append(colnames, k)
			}
		}
	}
	sort.Strings(colnames)

	columns := make([]series.Series, len(colnames))
	for i, colname := range colnames {
		vals := make([]series.Value, len(maps))
		for j, m := range maps {
			v := series.ValueOf(m[colname])
			if v.Kind() == series.Text && findInStringSlice(v.String(), cfg.nanValues) != -1 {
				v = series.NA()
			}
			vals[j] = v
		}
		switch t, ok := cfg.types[colname]; {
		case ok:
			columns[i] = series.New(vals, t, colname)
		case cfg.detectTypes:
			columns[i] = series.InferAs(vals, colname, cfg.defaultType)
		default:
			columns[i] = series.New(vals, cfg.defaultType, colname)
		}
	}
	return New(columns...)
}

// Matrix 是与 gonum mat.Matrix 兼容的矩阵接口。
type Matrix interface {
	Dims() (r, c int)
	At(i, j int) float64
}

// LoadMatrix 从矩阵加载 DataFrame，每一列成为一个 Float 列。
func LoadMatrix(mat Matrix) DataFrame {
	nrows, ncols := mat.Dims()
	columns := make([]series.Series, ncols)
	for i := 0; i < ncols; i++ {
		floats := make([]float64, nrows)
		for j := 0; j < nrows; j++ {
			floats[j] = mat.At(j, i)
		}
		columns[i] = series.Floats(floats)
	}
	if ncols == 0 {
		return DataFrame{Err: fmt.Errorf("load matrix: 空矩阵")}
	}
	return build(columns, nrows)
}

// ReadCSV 从 CSV 格式的输入读取 DataFrame。
func ReadCSV(r io.Reader, options ...LoadOption) DataFrame {
	cfg := defaultLoadOptions()
	for _, option := range options {
		option(&cfg)
	}

	in, err := decodeReader(r, cfg.encoding)
	if err != nil {
		return DataFrame{Err: err}
	}
	csvReader := csv.NewReader(in)
	csvReader.Comma = cfg.delimiter
	csvReader.LazyQuotes = cfg.lazyQuotes
	csvReader.Comment = cfg.comment

	records, err := csvReader.ReadAll()
	if err != nil {
		return DataFrame{Err: err}
	}
	return LoadRecords(records, options...)
}

// ReadJSON 从 JSON 格式的输入读取 DataFrame，输入应为对象数组。
func ReadJSON(r io.Reader, options ...LoadOption) DataFrame {
	var m []map[string]interface{}
	d := json.NewDecoder(r)
	d.UseNumber()
	if err := d.Decode(&m); err != nil {
		return DataFrame{Err: err}
	}
	return LoadMaps(m, options...)
}

// WriteOption 定义写操作的选项类型。
type WriteOption func(*writeOptions)

// writeOptions 包含写操作的选项。
type writeOptions struct {
	writeHeader bool
}

// WriteHeader 指定是否写入 CSV 文件的列头。
func WriteHeader(b bool) WriteOption {
	return func(c *writeOptions) {
		c.writeHeader = b
	}
}

// WriteCSV 将 DataFrame 写入 CSV 格式。缺失值写为 NaN。
func (df DataFrame) WriteCSV(w io.Writer, options ...WriteOption) error {
	if df.Err != nil {
		return df.Err
	}
	cfg := writeOptions{
		writeHeader: true,
	}
	for _, option := range options {
		option(&cfg)
	}

	records := df.Records()
	if !cfg.writeHeader {
		records = records[1:]
	}
	return csv.NewWriter(w).WriteAll(records)
}

// WriteJSON 将 DataFrame 写入 JSON 格式。缺失值写为 null。
func (df DataFrame) WriteJSON(w io.Writer) error {
	if df.Err != nil {
		return df.Err
	}
	return json.NewEncoder(w).Encode(df.Maps())
}

// pending 记录因 rowspan 需要延续到后续行的单元格。
type pending struct {
	index int
	text  string
	nrows int
}

// readRows 从 HTML 表格行中读取单元格文本，展开 rowspan 与 colspan。
func readRows(trs []*html.Node) [][]string {
	var carry []pending
	var rows [][]string
	emit := func(row []string, next []pending, p pending) ([]string, []pending) {
		row = append(row, p.text)
		if p.nrows > 1 {
			next = append(next, pending{p.index, p.text, p.nrows - 1})
		}
		return row, next
	}

	for _, tr := range trs {
		var next []pending
		var row []string
		index := 0
		for td := tr.FirstChild; td != nil; td = td.NextSibling {
			if td.Type != html.ElementNode || (td.DataAtom != atom.Td && td.DataAtom != atom.Th) {
				continue
			}
			for len(carry) > 0 && carry[0].index <= index {
				row, next = emit(row, next, carry[0])
				carry = carry[1:]
				index++
			}

			rowspan, colspan := 1, 1
			for _, attr := range td.Attr {
				k, err := strconv.Atoi(attr.Val)
				if err != nil {
					continue
				}
				switch attr.Key {
				case "rowspan":
					rowspan = k
				case "colspan":
					colspan = k
				}
			}
			text := ""
			for c := td.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					text = strings.TrimSpace(c.Data)
				}
			}
			for k := 0; k < colspan; k++ {
				row, next = emit(row, next, pending{index, text, rowspan})
				index++
			}
		}
		for _, p := range carry {
			row, next = emit(row, next, p)
		}
		rows = append(rows, row)
		carry = next
	}
	for len(carry) > 0 {
		var next []pending
		var row []string
		for _, p := range carry {
			row, next = emit(row, next, p)
		}
		rows = append(rows, row)
		carry = next
	}
	return rows
}

// ReadHTML 从 HTML 格式的输入读取多个 DataFrame。每个 DataFrame 对应一个 HTML 表格。
func ReadHTML(r io.Reader, options ...LoadOption) []DataFrame {
	doc, err := html.Parse(r)
	if err != nil {
		return []DataFrame{{Err: err}}
	}

	var dfs []DataFrame
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			var trs []*html.Node
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type != html.ElementNode || (c.DataAtom != atom.Tbody && c.DataAtom != atom.Thead) {
					continue
				}
				for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
					if cc.Type == html.ElementNode && cc.DataAtom == atom.Tr {
						trs = append(trs, cc)
					}
				}
			}
			if df := LoadRecords(readRows(trs), options...); df.Err == nil {
				dfs = append(dfs, df)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return dfs
}
