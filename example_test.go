package resampler_test

import (
	"fmt"

	resampler "github.com/tphakala/go-pcm-resampler"
)

func ExampleResampler_Resample() {
	r := resampler.NewResampler()
	if err := r.Configure(8000, 16000, 1); err != nil {
		fmt.Println(err)
		return
	}

	input := []int16{0, 100, 200}
	output := make([]int16, r.ExpectedOutputLength(len(input)))
	n := r.Resample(input, output)

	fmt.Println(n, output[:n])
	// Output:
	// 6 [0 40 80 120 160 200]
}

func ExampleResampler_Resample_capacity() {
	r, _ := resampler.NewSimple(3, 2)

	input := []int16{0, 1000, 2000, 3000, 4000, 5000, 6000, 7000, 8000, 9000}
	output := make([]int16, 4)
	n := r.Resample(input, output)

	fmt.Printf("expected=%d written=%d %v\n", r.ExpectedOutputLength(len(input)), n, output)
	// Output:
	// expected=7 written=4 [0 1500 3000 4500]
}

func ExampleResampleInt16() {
	input := make([]int16, resampler.RateCD)
	output, err := resampler.ResampleInt16(input, resampler.RateCD, resampler.RateFingerprint)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("in=%d out=%d\n", len(input), len(output))
	// Output:
	// in=44100 out=10240
}
