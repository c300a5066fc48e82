package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Pilo-pillow/dataclean/cleaning"
	"github.com/Pilo-pillow/dataclean/dataframe"
	"github.com/Pilo-pillow/dataclean/logger"
	"github.com/Pilo-pillow/dataclean/series"
)

func main() {
	logger.InitLogger(slog.LevelInfo)

	csvData := `
name,status,age,city
刘备,yes,44,成都
关羽,no,,荆州
张飞,unknown,40,NA
曹操,yes,NA,NA`
	df := dataframe.ReadCSV(strings.NewReader(csvData))
	if df.Err != nil {
		slog.Error("读取 CSV 失败", "error", df.Err)
		os.Exit(1)
	}
	fmt.Println(df)

	counts, err := cleaning.CountUniqueValues(df, "status", "city")
	if err != nil {
		slog.Error("统计失败", "error", err)
		os.Exit(1)
	}
	fmt.Println(counts)

	replaced, err := cleaning.ReplaceValues(df, []string{"status"}, cleaning.Replacements{"unknown": nil})
	if err != nil {
		slog.Error("替换失败", "error", err)
		os.Exit(1)
	}
	summary, err := cleaning.SummarizeMissing(replaced)
	if err != nil {
		slog.Error("汇总失败", "error", err)
		os.Exit(1)
	}
	fmt.Println(summary)

	p := cleaning.NewPipeline(
		cleaning.Replace([]string{"status"}, cleaning.Replacements{"unknown": nil, "yes": 1, "no": 0}),
		cleaning.DropColumns(0.5),
		cleaning.DropRows(0.5),
		cleaning.Impute(),
	)
	cleaned, err := p.Run(context.Background(), df)
	if err != nil {
		slog.Error("清洗失败", "error", err)
		os.Exit(1)
	}
	fmt.Println(cleaned)
	fmt.Println(cleaned.Describe())

	s := series.Infer([]interface{}{1, 2.5, nil}, "mixed")
	fmt.Println(s.Str())
}
