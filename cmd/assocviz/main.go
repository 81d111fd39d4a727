// Command assocviz loads keys into a HashMap or TreeMap and prints the
// container's internal structure, as Graphviz DOT, as a console dump or as
// bin statistics.
//
//	assocviz tree 5 3 8 1 4 --int | dot -Tsvg > tree.svg
//	assocviz hash --collide 3 --format console < words.txt
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
