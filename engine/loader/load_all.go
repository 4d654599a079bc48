package loader

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/hhllhhyyds/learn-vulkano/engine/model"
)

// LoadAll loads several OBJ files concurrently and returns the parsed meshes
// keyed by path. The same options are applied to every file. Files are parsed
// on a bounded worker pool sized to the machine; the call blocks until all
// loads finish. If any load fails, the first error (in path order) is
// returned and the result map is nil.
//
// Parameters:
//   - paths: filesystem paths of the .obj files to load
//   - options: functional options applied to every load
//
// Returns:
//   - map[string][]model.NormalVertex: meshes keyed by their path
//   - error: the first load error encountered, or nil
func LoadAll(paths []string, options ...LoadOption) (map[string][]model.NormalVertex, error) {
	if len(paths) == 0 {
		return map[string][]model.NormalVertex{}, nil
	}

	workers := min(max(runtime.NumCPU()-1, 1), len(paths))
	pool := worker.NewDynamicWorkerPool(workers, len(paths), 1*time.Second)

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		meshes = make(map[string][]model.NormalVertex, len(paths))
		errs   = make([]error, len(paths))
	)

	for i, path := range paths {
		wg.Add(1)
		id, p := i, path
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				mesh, err := Load(p, options...)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs[id] = err
					return nil, err
				}
				meshes[p] = mesh
				return nil, nil
			},
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return meshes, nil
}
