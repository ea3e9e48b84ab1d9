package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/raykavin/chartdraw/pkg/chart"
	"github.com/raykavin/chartdraw/pkg/core"
	"github.com/raykavin/chartdraw/pkg/feed"
	"github.com/raykavin/chartdraw/pkg/indicator"
	"github.com/raykavin/chartdraw/pkg/logger"
	zologger "github.com/raykavin/chartdraw/pkg/logger/zerolog"
	"github.com/raykavin/chartdraw/pkg/metric"
	"github.com/raykavin/chartdraw/pkg/plot"
	plotindicator "github.com/raykavin/chartdraw/pkg/plot/indicator"
	"github.com/spf13/cobra"
)

const (
	dateLayout = "2006-01-02"

	chartWidth  = 1280.0
	chartHeight = 640.0
)

// Command line flags
var (
	// Shared flags
	pair      string
	timeframe string

	// Download command flags
	days       int
	startDate  string
	endDate    string
	outputFile string
	cacheFile  string

	// Serve command flags
	inputFile string
	port      int
	debug     bool

	// Describe command flags
	indicatorName string
	period        int
	bins          int

	// Snapshot command flags
	annotationsFile string
	snapshotOutput  string
)

func main() {
	log, err := zologger.NewZerolog("info", "2006-01-02 15:04:05", true, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:     "chartdraw",
		Short:   "Candlestick charting with drawing tools and indicators",
		Version: "1.0.0",
	}

	rootCmd.AddCommand(buildDownloadCmd(log))
	rootCmd.AddCommand(buildServeCmd(log))
	rootCmd.AddCommand(buildDescribeCmd())
	rootCmd.AddCommand(buildSnapshotCmd(log))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildDownloadCmd(log logger.Logger) *cobra.Command {
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download historical candle data to a CSV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDownload(cmd, log)
		},
	}

	downloadCmd.Flags().StringVarP(&pair, "pair", "p", "", "Trading pair (e.g. BTCUSDT)")
	downloadCmd.Flags().IntVarP(&days, "days", "d", 0, "Number of days to download (default 30 days)")
	downloadCmd.Flags().StringVarP(&startDate, "start", "s", "", "Start date (e.g. 2021-12-01)")
	downloadCmd.Flags().StringVarP(&endDate, "end", "e", "", "End date (e.g. 2021-12-31)")
	downloadCmd.Flags().StringVarP(&timeframe, "timeframe", "t", "", "Timeframe (e.g. 1h)")
	downloadCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (e.g. ./btc.csv)")
	downloadCmd.Flags().StringVarP(&cacheFile, "cache", "c", "", "Candle cache file (skips refetching known ranges)")

	downloadCmd.MarkFlagRequired("pair")
	downloadCmd.MarkFlagRequired("timeframe")
	downloadCmd.MarkFlagRequired("output")

	return downloadCmd
}

func runDownload(cmd *cobra.Command, log logger.Logger) error {
	binance, err := feed.NewBinance(cmd.Context())
	if err != nil {
		return err
	}

	var source feed.Source = binance
	if cacheFile != "" {
		cache, err := feed.NewCache(cacheFile, binance)
		if err != nil {
			return err
		}
		defer cache.Close()
		source = cache
	}

	options, err := buildDownloadOptions()
	if err != nil {
		return err
	}

	return feed.NewDownloader(log, source).Download(
		cmd.Context(),
		pair,
		timeframe,
		outputFile,
		options...,
	)
}

func buildDownloadOptions() ([]feed.DownloadOption, error) {
	var options []feed.DownloadOption

	if days > 0 {
		options = append(options, feed.WithDays(days))
	}

	if startDate != "" || endDate != "" {
		if startDate == "" || endDate == "" {
			return nil, fmt.Errorf("start and end dates must be provided together")
		}

		start, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date format: %w", err)
		}

		end, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end date format: %w", err)
		}

		options = append(options, feed.WithInterval(start, end))
	}

	return options, nil
}

func buildServeCmd(log logger.Logger) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an interactive chart from a CSV candle file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, log)
		},
	}

	serveCmd.Flags().StringVarP(&pair, "pair", "p", "", "Trading pair (e.g. BTCUSDT)")
	serveCmd.Flags().StringVarP(&timeframe, "timeframe", "t", "", "Timeframe (e.g. 1h)")
	serveCmd.Flags().StringVarP(&inputFile, "file", "f", "", "CSV candle file")
	serveCmd.Flags().IntVar(&port, "port", 8080, "HTTP port")
	serveCmd.Flags().BoolVar(&debug, "debug", false, "Serve chart assets without minification")

	serveCmd.MarkFlagRequired("pair")
	serveCmd.MarkFlagRequired("timeframe")
	serveCmd.MarkFlagRequired("file")

	return serveCmd
}

func runServe(cmd *cobra.Command, log logger.Logger) error {
	candles, err := loadCandles()
	if err != nil {
		return err
	}

	options := []plot.Option{
		plot.WithPort(port),
		plot.WithIndicators(
			plotindicator.EMA(9, "#ff8800"),
			plotindicator.SMA(21, "#4db6ac"),
			plotindicator.RSI(14, "#2196f3"),
			plotindicator.MACD(12, 26, 9, "#2196f3", "#f44336", "#9e9e9e"),
		),
	}
	if debug {
		options = append(options, plot.WithDebug())
	}

	chartServer, err := plot.NewChart(log, options...)
	if err != nil {
		return err
	}

	manager := chart.NewManager(
		log,
		chart.NewSVGSurface(chartWidth, chartHeight),
		chart.ViewportFromCandles(candles, chartWidth, chartHeight),
		chart.NewEventFeed(),
	)
	manager.Attach()

	chartServer.RegisterManager(pair, manager)
	chartServer.OnCandles(pair, candles)

	return chartServer.Start()
}

func buildDescribeCmd() *cobra.Command {
	describeCmd := &cobra.Command{
		Use:   "describe",
		Short: "Print summary statistics for an indicator over a CSV candle file",
		RunE:  runDescribe,
	}

	describeCmd.Flags().StringVarP(&pair, "pair", "p", "", "Trading pair (e.g. BTCUSDT)")
	describeCmd.Flags().StringVarP(&timeframe, "timeframe", "t", "", "Timeframe (e.g. 1h)")
	describeCmd.Flags().StringVarP(&inputFile, "file", "f", "", "CSV candle file")
	describeCmd.Flags().StringVarP(&indicatorName, "indicator", "i", "rsi", "Indicator (ema or rsi)")
	describeCmd.Flags().IntVar(&period, "period", 14, "Indicator period")
	describeCmd.Flags().IntVar(&bins, "bins", 15, "Histogram bins")

	describeCmd.MarkFlagRequired("pair")
	describeCmd.MarkFlagRequired("timeframe")
	describeCmd.MarkFlagRequired("file")

	return describeCmd
}

func runDescribe(_ *cobra.Command, _ []string) error {
	candles, err := loadCandles()
	if err != nil {
		return err
	}

	dataframe := core.NewDataframe(pair, candles)

	var points []core.DataPoint
	var name string
	switch indicatorName {
	case "ema":
		name = fmt.Sprintf("EMA(%d)", period)
		points = indicator.ComputeEMA(dataframe.Close, dataframe.Time, period)
	case "rsi":
		name = fmt.Sprintf("RSI(%d)", period)
		points = indicator.ComputeRSI(dataframe.Close, dataframe.Time, period)
	default:
		return fmt.Errorf("unknown indicator: %s", indicatorName)
	}

	summary := metric.Describe(name, points)
	fmt.Println(summary)

	// Price/indicator crossings only mean something for overlays
	if indicatorName == "ema" {
		switch indicator.DetectCross(dataframe, points) {
		case indicator.SignalCrossUp:
			fmt.Printf("close crossed above %s on the last candle\n", name)
		case indicator.SignalCrossDown:
			fmt.Printf("close crossed below %s on the last candle\n", name)
		}
	}

	return summary.Histogram(os.Stdout, bins)
}

func buildSnapshotCmd(log logger.Logger) *cobra.Command {
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render a CSV candle window with annotations to an SVG file",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSnapshot(log)
		},
	}

	snapshotCmd.Flags().StringVarP(&pair, "pair", "p", "", "Trading pair (e.g. BTCUSDT)")
	snapshotCmd.Flags().StringVarP(&timeframe, "timeframe", "t", "", "Timeframe (e.g. 1h)")
	snapshotCmd.Flags().StringVarP(&inputFile, "file", "f", "", "CSV candle file")
	snapshotCmd.Flags().StringVarP(&annotationsFile, "annotations", "a", "", "JSON annotations file")
	snapshotCmd.Flags().StringVarP(&snapshotOutput, "output", "o", "chart.svg", "Output SVG file")

	snapshotCmd.MarkFlagRequired("pair")
	snapshotCmd.MarkFlagRequired("timeframe")
	snapshotCmd.MarkFlagRequired("file")

	return snapshotCmd
}

// annotationPoint is a domain coordinate in the annotations file,
// time given as RFC 3339
type annotationPoint struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

func (p annotationPoint) domain() core.Point {
	return core.Point{Time: p.Time, Price: p.Price}
}

// annotationSpec is one entry of the annotations file. Text entries use
// "from" as the anchor and ignore "to".
type annotationSpec struct {
	Tool string          `json:"tool"`
	From annotationPoint `json:"from"`
	To   annotationPoint `json:"to"`
	Text string          `json:"text,omitempty"`
}

func runSnapshot(log logger.Logger) error {
	candles, err := loadCandles()
	if err != nil {
		return err
	}

	manager := chart.NewManager(
		log,
		chart.NewSVGSurface(chartWidth, chartHeight),
		chart.ViewportFromCandles(candles, chartWidth, chartHeight),
		chart.NewEventFeed(),
	)
	manager.Attach()

	if annotationsFile != "" {
		if err := applyAnnotations(manager, annotationsFile); err != nil {
			return err
		}
	}

	svg, ok := manager.Snapshot()
	if !ok {
		return fmt.Errorf("no drawing surface available")
	}

	if err := os.WriteFile(snapshotOutput, svg, 0o644); err != nil {
		return err
	}

	log.Infof("wrote %s (%d bytes)", snapshotOutput, len(svg))
	return nil
}

// applyAnnotations replays the annotations file through the manager
// surface, so every committed primitive triggers a redraw and the final
// snapshot reflects the replayed drawings
func applyAnnotations(manager *chart.Manager, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var specs []annotationSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return fmt.Errorf("invalid annotations file: %w", err)
	}

	for _, spec := range specs {
		tool := chart.Tool(spec.Tool)
		switch {
		case tool == chart.ToolText:
			manager.AddText(spec.From.domain(), spec.Text)
		case tool.IsLine() || tool.IsShape():
			manager.SelectTool(tool)
			manager.PointerDown(spec.From.domain())
			manager.PointerMove(spec.To.domain())
			manager.PointerUp()
		default:
			return fmt.Errorf("unknown annotation tool: %s", spec.Tool)
		}
	}

	return nil
}

// loadCandles reads the full candle window from the input CSV file
func loadCandles() ([]core.Candle, error) {
	csvFeed, err := feed.NewCSVFeed(timeframe, feed.PairFeed{
		Pair:      pair,
		File:      inputFile,
		Timeframe: timeframe,
	})
	if err != nil {
		return nil, err
	}

	candles := csvFeed.CandlePairTimeFrame[fmt.Sprintf("%s--%s", pair, timeframe)]
	if len(candles) == 0 {
		return nil, fmt.Errorf("%w: %s", core.ErrInsufficientData, pair)
	}

	return candles, nil
}
