package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// tagSets 每個 build tag 組合都要各跑一次測試，確認條件編譯的每條路徑都能編譯且通過。
var tagSets = []string{
	"",
	"floatrand_portablemath",
	"floatrand_nomath",
	"floatrand_noshared",
	"floatrand_nomath,floatrand_noshared",
}

// runTest: go clean -testcache 後跑預設 build 的測試，只顯示 ok / FAIL
func runTest() {
	PrintGreen("running tests")
	cleanCache()
	if !goTest("", false) {
		PrintRed("\nTests Finished with Errors")
		os.Exit(1)
	}
}

// runTestTags 逐一以 tagSets 執行測試
func runTestTags() {
	PrintGreen("running tests for every build tag set")
	cleanCache()
	failed := 0
	for _, tags := range tagSets {
		name := tags
		if name == "" {
			name = "(default)"
		}
		PrintBlue("== tags: " + name)
		if !goTest(tags, false) {
			failed++
		}
	}
	if failed > 0 {
		PrintRed(fmt.Sprintf("\n%d tag set(s) finished with errors", failed))
		os.Exit(1)
	}
}

// runTestDetail: verbose 測試，過濾掉 "[no test files]"
func runTestDetail() {
	PrintGreen("running tests (detail)")
	cleanCache()
	if !goTest("", true) {
		PrintRed("\nTests (detail) finished with errors")
		os.Exit(1)
	}
}

// runVerify 以固定 seed 對每種常態方法與幾個代表區間做一次統計驗證
func runVerify() {
	PrintGreen("running sampling verification")
	runs := [][]string{
		{"-kind", "normal", "-method", "approx"},
		{"-kind", "normal", "-method", "exact"},
		{"-kind", "normal", "-method", "sum"},
		{"-kind", "range", "-interval", "[0,1)"},
		{"-kind", "range", "-interval", "(,)"},
		{"-kind", "range", "-interval", "[-3e38,3e38]", "-bits", "32"},
	}
	for _, args := range runs {
		full := append([]string{"run", "./cmd/run", "-n", "2000000", "-seed", "1", "-progress=false"}, args...)
		cmd := exec.Command("go", full...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			PrintRed(fmt.Sprintf("verify %v failed: %v", args, err))
			os.Exit(1)
		}
	}
}

func cleanCache() {
	cleanCmd := exec.Command("go", "clean", "-testcache")
	cleanCmd.Stderr = os.Stderr
	if err := cleanCmd.Run(); err != nil {
		// clean 失敗不一定要中斷
		PrintRed(err.Error())
	}
}

// goTest 執行 go test 並把輸出上色；verbose 時印出全部 log。回傳是否通過。
func goTest(tags string, verbose bool) bool {
	args := []string{"test", "./...", "-count=1"}
	if verbose {
		args = append(args, "-v")
	} else {
		args = append(args, "-cover")
	}
	if tags != "" {
		args = append(args, "-tags", tags)
	}
	cmd := exec.Command("go", args...)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		PrintRed(fmt.Sprintf("failed to get stdout pipe: %v", err))
		return false
	}
	// 編譯錯誤在 Stderr，一起讀
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		PrintRed(fmt.Sprintf("Error starting go test: %v", err))
		return false
	}

	scanner := bufio.NewScanner(stdoutPipe)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.Contains(line, "[no test files]"):
		case strings.HasPrefix(line, "ok"):
			PrintGreen(line)
		case strings.HasPrefix(line, "FAIL"):
			PrintRed(line)
		case strings.Contains(line, "build failed") || strings.Contains(line, "setup failed"):
			PrintRed(line)
		case verbose:
			fmt.Println(line)
		}
	}
	return cmd.Wait() == nil
}
