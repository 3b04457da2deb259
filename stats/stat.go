// Package stats 驗證取樣結果：常態分佈的 sigma 區間比例、動差與 KS 距離，
// 區間均勻取樣的越界檢查與卡方均勻性檢定，以及報表輸出。
package stats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// ============================================================
// ** 公開方法 **
// ============================================================

func (n *NormalReport) WriteWith(w io.Writer, rep ReportRender) error {
	n.Done()
	return rep.Write(w, n)
}

func (u *UniformReport) WriteWith(w io.Writer, rep ReportRender) error {
	u.Done()
	return rep.Write(w, u)
}

// StdOut 以表格輸出到 stdout
func (n *NormalReport) StdOut(ut time.Duration) {
	formatDuration(ut, n.Samples)
	fmt.Println(n.Table())
}

// StdOut 以表格輸出到 stdout
func (u *UniformReport) StdOut(ut time.Duration) {
	formatDuration(ut, u.Samples)
	fmt.Println(u.Table())
}

// Table 回傳表格字串
func (n *NormalReport) Table() string {
	k, m := n.fmtBasic()
	return fmtTable(fmt.Sprintf("Normal (%s, float%d)", n.Method, n.Bits), k, m)
}

// Table 回傳表格字串
func (u *UniformReport) Table() string {
	k, m := u.fmtBasic()
	return fmtTable(fmt.Sprintf("Range %s (float%d)", u.Interval, u.Bits), k, m)
}

// ============================================================
// ** 內部方法 **
// ============================================================

func formatDuration(d time.Duration, samples int) {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	sps := int(float64(samples) / sec)
	if sec < 60.0 {
		p.Printf("used: %.2f seconds\nsps : %d samples/sec\n", sec, sps)
		return
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		p.Printf("used: %dm %ds\nsps : %d samples/sec\n", m, s, sps)
		return
	}
	p.Printf("used: %dh:%dm:%ds\nsps : %d samples/sec\n", h, m, s, sps)
}

func (n *NormalReport) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	basic := map[string]string{
		"Method":      n.Method,
		"Target":      p.Sprintf("N(%g, %g²)", n.Mean, n.Sigma),
		"Samples":     p.Sprintf("%d", n.Samples),
		"Mean":        p.Sprintf("%.4f", n.SampleMean),
		"Std":         p.Sprintf("%.4f", n.SampleStd),
		"Within 1σ":   p.Sprintf("%.2f %% (%.2f)", n.Bands[0], NormalBandsExpected[0]),
		"1σ ~ 2σ":     p.Sprintf("%.2f %% (%.2f)", n.Bands[1], NormalBandsExpected[1]),
		"2σ ~ 3σ":     p.Sprintf("%.2f %% (%.2f)", n.Bands[2], NormalBandsExpected[2]),
		"Beyond 3σ":   p.Sprintf("%.2f %%", n.Outside),
		"Non-finite":  p.Sprintf("%d", n.NonFinite),
		"KS distance": p.Sprintf("%.5f (crit %.5f)", n.KS, n.KSCritical),
		"Bands OK":    fmt.Sprintf("%t", n.BandsOK),
	}
	keys := []string{"Method", "Target", "Samples", "Mean", "Std", "Within 1σ", "1σ ~ 2σ", "2σ ~ 3σ", "Beyond 3σ", "Non-finite", "KS distance", "Bands OK"}
	return keys, basic
}

func (u *UniformReport) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	basic := map[string]string{
		"Interval":   u.Interval,
		"Resolved":   fmt.Sprintf("[%g, %g]", u.Low, u.High),
		"Samples":    p.Sprintf("%d", u.Samples),
		"Min":        fmt.Sprintf("%g", u.Min),
		"Max":        fmt.Sprintf("%g", u.Max),
		"Hit Low":    p.Sprintf("%d", u.HitLow),
		"Hit High":   p.Sprintf("%d", u.HitHigh),
		"Violations": p.Sprintf("%d", u.Violations),
		"Non-finite": p.Sprintf("%d", u.NonFinite),
		"Bins":       p.Sprintf("%d", len(u.Counts)),
		"Chi-square": p.Sprintf("%.3f", u.ChiSquare),
		"P-value":    p.Sprintf("%.4f", u.PValue),
	}
	keys := []string{"Interval", "Resolved", "Samples", "Min", "Max", "Hit Low", "Hit High", "Violations", "Non-finite", "Bins", "Chi-square", "P-value"}
	return keys, basic
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	if titleW > totalInner {
		maxValLen += titleW - totalInner
		totalInner = titleW
	}

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", totalInner) + "+\n"

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var sb strings.Builder
	sb.WriteString(top)
	sb.WriteString(p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right)))
	sb.WriteString(divider)
	for _, k := range keys {
		sb.WriteString(p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k]))))
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
