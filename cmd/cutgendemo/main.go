// Command cutgendemo separates a single cut from a small hardcoded
// knapsack-style relaxation, wiring together simplemip's reference
// collaborators, boundsub's reference TransformedLP, and the cutgen
// engine end to end.
package main

import (
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/mat"

	"github.com/gomip/cutgen/cutgen"
	"github.com/gomip/cutgen/boundsub"
	"github.com/gomip/cutgen/simplemip"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cutgendemo",
		Short: "Separate a cut from a small built-in knapsack relaxation",
		RunE:  runDemo,
	}

	cmd.Flags().Float64("feastol", 1e-6, "feasibility tolerance")
	cmd.Flags().Float64("epsilon", 1e-9, "base numerical epsilon")
	cmd.Flags().String("config", "", "optional config file (yaml/json/toml) overriding the tolerance flags")

	viper.BindPFlag("feastol", cmd.Flags().Lookup("feastol"))
	viper.BindPFlag("epsilon", cmd.Flags().Lookup("epsilon"))

	return cmd
}

func runDemo(cmd *cobra.Command, args []string) error {
	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("cutgendemo: reading config: %w", err)
		}
	}

	feastol := viper.GetFloat64("feastol")
	epsilon := viper.GetFloat64("epsilon")

	// A 5-item 0/1 knapsack: maximize value subject to one weight row.
	// gonum's simplex minimizes, so the objective is negated value.
	weights := []float64{5, 4, 6, 3, 7}
	values := []float64{8, 6, 9, 4, 11}
	capacity := 12.0
	n := len(weights)

	obj := make([]float64, n)
	for i, v := range values {
		obj[i] = -v
	}

	problem := &simplemip.Problem{
		NumCols: n,
		Integer: allTrue(n),
		Lower:   zeros(n),
		Upper:   ones(n),
		Obj:     obj,
		AUb:     mat.NewDense(1, n, weights),
		BUb:     []float64{capacity},
	}

	domain := simplemip.NewDomain(problem.Lower, problem.Upper)
	data := simplemip.NewData(feastol, epsilon, domain)
	solver := simplemip.NewSolver(data)
	relaxation := simplemip.NewRelaxation(problem, solver)

	if err := relaxation.Solve(); err != nil {
		return fmt.Errorf("cutgendemo: solving relaxation: %w", err)
	}
	if glog.V(1) {
		glog.V(1).Infof("cutgendemo: relaxation solution: %v", relaxation.Solution())
	}

	pool := simplemip.NewPool()
	eng := cutgen.NewEngine(relaxation, pool, cutgen.WithFeasTol(feastol), cutgen.WithEpsilon(epsilon))
	transform := boundsub.New(relaxation, domain)

	inds := make([]int, n)
	for i := range inds {
		inds[i] = i
	}

	cutInds, cutVals, cutRhs, ok, err := eng.GenerateCut(transform, inds, weights, capacity)
	if err != nil {
		return fmt.Errorf("cutgendemo: generating cut: %w", err)
	}
	if !ok {
		fmt.Println("no cut found: the knapsack row is not separable at this point")
		return nil
	}

	fmt.Println("generated cut:")
	for i, col := range cutInds {
		fmt.Printf("  %+g * x[%d]\n", cutVals[i], col)
	}
	fmt.Printf("  <= %g\n", cutRhs)

	return nil
}

func allTrue(n int) []bool {
	b := make([]bool, n)
	for i := range b {
		b[i] = true
	}
	return b
}

func zeros(n int) []float64 { return make([]float64, n) }

func ones(n int) []float64 {
	f := make([]float64, n)
	for i := range f {
		f[i] = 1
	}
	return f
}
