// Package main - rankctl CLI
// 순위 조회 및 마이그레이션 CLI
//
// 사용법:
//
//	go run ./cmd/rankctl points --base profitability --window 4
//	go run ./cmd/rankctl podium --periods "2024 T3"
//	go run ./cmd/rankctl migrate
package main

import (
	"os"

	"github.com/MHmolesini/alphavantage-sub000/cmd/rankctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
