package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// runTest 只印出每個套件的 ok / FAIL 行。
func runTest() error {
	PrintGreen("running tests")
	return goTest(func(line string) {
		switch {
		case strings.HasPrefix(line, "ok"):
			PrintGreen(line)
		case strings.HasPrefix(line, "FAIL"), strings.Contains(line, "build failed"):
			PrintRed(line)
		}
	}, "-cover", "-count=1")
}

// runTestDetail 印出全部輸出，略過沒有測試的套件。
func runTestDetail() error {
	PrintGreen("running tests (detail)")
	return goTest(func(line string) {
		switch {
		case strings.Contains(line, "[no test files]"):
		case strings.HasPrefix(line, "ok"):
			PrintGreen(line)
		case strings.HasPrefix(line, "FAIL"):
			PrintRed(line)
		default:
			fmt.Println(line)
		}
	}, "-v", "-count=1")
}

// runSample 以內建 preset 跑一次，輸出義大利文報表。
func runSample() error {
	PrintGreen("single run with preset default")
	return goRun("./cmd/run", "-preset", "default", "-seed", "1", "-format", "text")
}

// runBatchSample 以 batch preset 跑 Monte Carlo 摘要。
func runBatchSample() error {
	PrintGreen("batch with preset batch")
	return goRun("./cmd/run", "-preset", "batch", "-seed", "1", "-format", "table")
}

func goTest(onLine func(string), args ...string) error {
	if err := exec.Command("go", "clean", "-testcache").Run(); err != nil {
		PrintYellow(fmt.Sprintf("go clean -testcache: %v", err))
	}
	cmd := exec.Command("go", append([]string{"test", "./..."}, args...)...)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start go test: %w", err)
	}
	if err := scanLines(out, onLine); err != nil {
		return err
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("tests finished with errors: %w", err)
	}
	return nil
}

func goRun(pkg string, args ...string) error {
	cmd := exec.Command("go", append([]string{"run", pkg}, args...)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func scanLines(r io.Reader, onLine func(string)) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		onLine(sc.Text())
	}
	return sc.Err()
}
