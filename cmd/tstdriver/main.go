// Copyright (c) 2025 The tst authors
// SPDX-License-Identifier: MIT

// Command tstdriver builds a temporal-spatial trie from a CSV of
// (year,month,day,hour,lat,lng) records, reports construction timings and
// node counts, deletes the last-inserted record as a smoke test, and runs
// a handful of example range queries.
package main

import (
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/geoidx/tst"
)

func main() {
	input := flag.String("input", "records.csv", "CSV file of year,month,day,hour,lat,lng records")
	s2level := flag.Int("s2level", 20, "S2 cell level")
	tres := flag.String("tres", "hour", "temporal resolution: year|month|day|hour|minute|second")
	flag.Parse()

	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("open %s: %v", *input, err)
	}
	defer f.Close()

	index, err := tst.New[int](tst.Config{S2Res: *s2level, TRes: *tres})
	if err != nil {
		log.Printf("configure index: %v", err)
		return
	}

	var (
		encodingElapsed, insertionElapsed time.Duration
		lastFields                       []int
		lastLat, lastLng                 float64
		lineNum                          int
	)

	r := csv.NewReader(f)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("read %s: %v; stopping after %d records inserted so far", *input, err, lineNum)
			break
		}

		fields, lat, lng, err := parseRecord(record)
		if err != nil {
			log.Printf("skipping record %d: %v", lineNum+1, err)
			continue
		}

		startEncoding := time.Now()
		T, err := index.EncodeTime(fields)
		if err != nil {
			log.Printf("skipping record %d: encode time: %v", lineNum+1, err)
			continue
		}
		S := index.EncodeSpace(lat, lng)
		encodingElapsed += time.Since(startEncoding)

		lineNum++
		startInsertion := time.Now()
		index.Insert(T, S, lineNum)
		insertionElapsed += time.Since(startInsertion)

		lastFields, lastLat, lastLng = fields, lat, lng
	}

	log.Println("====== Trie Construction ======")
	log.Printf(">> Data Encoding Elapsed Time: %s", encodingElapsed)
	log.Printf(">> Index Building Elapsed Time (Node Insertion + Data Pointing): %s", insertionElapsed)
	log.Printf("    # of Internal Nodes: %d", index.LiveInternalNodeCount())
	log.Printf("    # of Leaf Nodes: %d", index.LiveLeafNodeCount())
	log.Printf("    # of Total Tree Nodes: %d", index.TotalNodeCount())

	log.Println("====== Node Deletion ======")
	log.Printf(">> Delete Last Record")
	log.Printf("    # of records (before deletion): %d", index.DataCount())
	if lastFields != nil {
		T, err := index.EncodeTime(lastFields)
		if err != nil {
			log.Printf("skipping smoke-test deletion: encode time: %v", err)
		} else {
			S := index.EncodeSpace(lastLat, lastLng)
			index.Delete(T, S, lineNum)
		}
	}
	log.Printf("    # of records (after deletion): %d", index.DataCount())

	log.Println("====== Query Execution ======")
	runExampleQuery(index, "Example Query 1",
		[]int{2016, 4, 21, 0}, []int{2016, 4, 21, 1},
		tst.LatLng{Lat: 23.176, Lng: 72.630}, tst.LatLng{Lat: 23.210, Lng: 72.635})
	runExampleQuery(index, "Example Query 2",
		[]int{2016, 4, 21, 0}, []int{2016, 4, 21, 6},
		tst.LatLng{Lat: 23.178, Lng: 72.632}, tst.LatLng{Lat: 23.190, Lng: 72.645})
	runExampleQuery(index, "Example Query 3",
		[]int{2016, 4, 21, 0}, []int{2016, 4, 21, 12},
		tst.LatLng{Lat: 23.174, Lng: 72.628}, tst.LatLng{Lat: 23.205, Lng: 72.654})
}

func runExampleQuery(index *tst.TST[int], name string, startFields, endFields []int, lb, ru tst.LatLng) {
	start, err := index.EncodeTime(startFields)
	if err != nil {
		log.Printf("%s: skipped: encode start time: %v", name, err)
		return
	}
	end, err := index.EncodeTime(endFields)
	if err != nil {
		log.Printf("%s: skipped: encode end time: %v", name, err)
		return
	}

	covering := index.RectangleToCells(lb, ru)
	results := index.RangeSearch(covering, start, end)
	log.Printf("%s: %d results found.", name, len(results))
}

func parseRecord(record []string) (fields []int, lat, lng float64, err error) {
	year, err := strconv.Atoi(record[0])
	if err != nil {
		return nil, 0, 0, err
	}
	month, err := strconv.Atoi(record[1])
	if err != nil {
		return nil, 0, 0, err
	}
	day, err := strconv.Atoi(record[2])
	if err != nil {
		return nil, 0, 0, err
	}
	hour, err := strconv.Atoi(record[3])
	if err != nil {
		return nil, 0, 0, err
	}
	lat, err = strconv.ParseFloat(record[4], 64)
	if err != nil {
		return nil, 0, 0, err
	}
	lng, err = strconv.ParseFloat(record[5], 64)
	if err != nil {
		return nil, 0, 0, err
	}
	return []int{year, month, day, hour}, lat, lng, nil
}
