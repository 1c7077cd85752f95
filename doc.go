// Package hnsw provides a concurrent, in-memory approximate
// nearest-neighbor index over fixed-dimensional float32 vectors, using a
// hierarchical navigable small world graph under squared Euclidean
// distance.
//
// # Quick start
//
//	idx := hnsw.New(128, hnsw.WithM(16), hnsw.WithEfConstruction(200))
//	id, _ := idx.Insert(vector)
//	results, _ := idx.Search(query, 10, 0)
//	for _, r := range results {
//	    fmt.Println(r.ID, r.Distance)
//	}
//
// # Building in bulk
//
// InsertBatch drives many goroutines over a slice of vectors, inserting
// the first few hundred sequentially to give the graph's upper layers a
// chance to form before parallel inserters start racing on a sparse
// crown:
//
//	ids, _ := idx.InsertBatch(context.Background(), vectors, runtime.GOMAXPROCS(0))
//
// # Scope
//
// The index is ephemeral: it lives only in process memory, supports
// squared L2 distance only, and never deletes or updates a vector once
// inserted. Persistence, other metrics, sharding, and quantization are
// out of scope — build those as collaborators around this index rather
// than inside it.
package hnsw
