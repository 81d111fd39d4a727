package main

import (
	"cmp"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/npillmayer/assoc"
	"github.com/spf13/cobra"
)

var (
	hashCmd = &cobra.Command{
		Use:   "hash [keys...]",
		Short: "Load keys into a hash map and print its table",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := readOptions(cmd)
			if err != nil {
				return err
			}
			var hopts hashOptions
			hopts.capacity, _ = cmd.Flags().GetInt("capacity")
			hopts.loadFactor, _ = cmd.Flags().GetFloat64("load-factor")
			hopts.collide, _ = cmd.Flags().GetUint64("collide")
			words, err := readKeys(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.ints {
				keys, err := parseInts(words)
				if err != nil {
					return err
				}
				return renderHash(out, keys, opts, hopts)
			}
			return renderHash(out, words, opts, hopts)
		},
	}
	treeCmd = &cobra.Command{
		Use:   "tree [keys...]",
		Short: "Load keys into a tree map and print the red-black tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := readOptions(cmd)
			if err != nil {
				return err
			}
			words, err := readKeys(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.ints {
				keys, err := parseInts(words)
				if err != nil {
					return err
				}
				return renderTree(out, keys, opts)
			}
			return renderTree(out, words, opts)
		},
	}
)

func init() {
	hashCmd.Flags().Int("capacity", assoc.DefaultCapacity, "initial table size, a power of two")
	hashCmd.Flags().Float64("load-factor", assoc.DefaultLoadFactor, "fill ratio which triggers a resize")
	hashCmd.Flags().Uint64("collide", 0, "if > 0, reduce hashes modulo this number to provoke collisions")
}

type hashOptions struct {
	capacity   int
	loadFactor float64
	collide    uint64
}

func renderHash[K comparable](w io.Writer, keys []K, opts options, hopts hashOptions) error {
	cfg := assoc.Config[K]{Capacity: hopts.capacity, LoadFactor: hopts.loadFactor}
	if n := hopts.collide; n > 0 {
		cfg.Hasher = func(k K) uint64 {
			return xxhash.Sum64String(fmt.Sprint(k)) % n
		}
	}
	m, err := assoc.NewHashMap[K, int](cfg)
	if err != nil {
		return err
	}
	for i, k := range keys {
		m.Put(k, i)
	}
	switch opts.format {
	case formatDot:
		assoc.HashMap2Dot(m, w)
	case formatConsole:
		m.Dump(w, opts.colored)
	case formatStats:
		s := m.Stats()
		fmt.Fprintf(w, "size      %d\n", s.Size)
		fmt.Fprintf(w, "capacity  %d (threshold %d)\n", s.Capacity, m.Threshold())
		fmt.Fprintf(w, "empty     %d\n", s.Empty)
		fmt.Fprintf(w, "chains    %d (longest %d)\n", s.Chains, s.LongestChain)
		fmt.Fprintf(w, "trees     %d (largest %d)\n", s.Trees, s.LargestTree)
	}
	return m.Check()
}

func renderTree[K cmp.Ordered](w io.Writer, keys []K, opts options) error {
	m := assoc.NewOrderedTreeMap[K, int]()
	for i, k := range keys {
		if _, _, err := m.Put(k, i); err != nil {
			return err
		}
	}
	switch opts.format {
	case formatDot:
		assoc.TreeMap2Dot(m, w)
	case formatConsole:
		m.Dump(w, opts.colored)
	case formatStats:
		fmt.Fprintf(w, "size      %d\n", m.Size())
		if first, ok, _ := m.First(); ok {
			last, _, _ := m.Last()
			fmt.Fprintf(w, "range     %v … %v\n", first.Key, last.Key)
		}
	}
	return m.Check()
}
