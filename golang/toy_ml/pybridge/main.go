// SPDX-License-Identifier: Apache-2.0

package main

/*
#cgo CFLAGS: -I.
#include <stdlib.h>
*/
import "C"

import (
	"errors"
	"unsafe"

	"github.com/tarstars/toy_ml_playground/golang/toy_ml/density"
	"github.com/tarstars/toy_ml_playground/golang/toy_ml/hierarchy"
	"github.com/tarstars/toy_ml_playground/golang/toy_ml/regression"
)

func sliceFromPtr(ptr *C.double, length int) ([]float64, error) {
	if length < 0 {
		return nil, errors.New("negative length")
	}
	if length == 0 {
		return nil, nil
	}
	if ptr == nil {
		return nil, errors.New("null pointer for non-empty slice")
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(ptr)), length), nil
}

func copyFloatSlice(ptr *C.double, length int) ([]float64, error) {
	src, err := sliceFromPtr(ptr, length)
	if err != nil || src == nil {
		return nil, err
	}
	dst := make([]float64, length)
	copy(dst, src)
	return dst, nil
}

func copyInts(dst *C.int, src []int) error {
	if len(src) == 0 {
		return nil
	}
	if dst == nil {
		return errors.New("null pointer for non-empty output")
	}
	out := unsafe.Slice(dst, len(src))
	for ind, value := range src {
		out[ind] = C.int(value)
	}
	return nil
}

func readMatrix(featuresPtr *C.double, rows, cols C.int, targetPtr *C.double) (features, target []float64, err error) {
	if rows < 0 || cols < 0 {
		return nil, nil, errors.New("invalid matrix dimensions")
	}
	if features, err = copyFloatSlice(featuresPtr, int(rows)*int(cols)); err != nil {
		return nil, nil, err
	}
	if targetPtr == nil {
		return features, nil, nil
	}
	target, err = copyFloatSlice(targetPtr, int(rows))
	return features, target, err
}

//export TrainRidge
func TrainRidge(featuresPtr *C.double, rows, cols C.int, targetPtr *C.double, alpha C.double) C.ulonglong {
	setLastError(nil)
	features, target, err := readMatrix(featuresPtr, rows, cols, targetPtr)
	if err != nil {
		setLastError(err)
		return 0
	}
	handle, err := trainRidge(features, int(rows), int(cols), target, float64(alpha))
	if err != nil {
		setLastError(err)
		return 0
	}
	return C.ulonglong(handle)
}

//export TrainLasso
func TrainLasso(
	featuresPtr *C.double,
	rows, cols C.int,
	targetPtr *C.double,
	alpha C.double,
	maxIterations C.int,
	tolerance C.double,
) C.ulonglong {
	setLastError(nil)
	features, target, err := readMatrix(featuresPtr, rows, cols, targetPtr)
	if err != nil {
		setLastError(err)
		return 0
	}
	handle, err := trainLasso(features, int(rows), int(cols), target, regression.LassoParams{
		Alpha:         float64(alpha),
		MaxIterations: int(maxIterations),
		Tolerance:     float64(tolerance),
	})
	if err != nil {
		setLastError(err)
		return 0
	}
	return C.ulonglong(handle)
}

//export Predict
func Predict(handle C.ulonglong, featuresPtr *C.double, rows, cols C.int, outputPtr *C.double) C.int {
	setLastError(nil)
	features, _, err := readMatrix(featuresPtr, rows, cols, nil)
	if err != nil {
		setLastError(err)
		return 1
	}
	out, err := sliceFromPtr(outputPtr, int(rows))
	if err != nil {
		setLastError(err)
		return 2
	}
	if err = predictRows(uint64(handle), features, int(rows), int(cols), out); err != nil {
		setLastError(err)
		return 3
	}
	return 0
}

//export Score
func Score(handle C.ulonglong, featuresPtr *C.double, rows, cols C.int, targetPtr *C.double, scorePtr *C.double) C.int {
	setLastError(nil)
	if scorePtr == nil {
		setLastError(errors.New("null score pointer"))
		return 1
	}
	features, target, err := readMatrix(featuresPtr, rows, cols, targetPtr)
	if err != nil {
		setLastError(err)
		return 2
	}
	score, err := scoreRows(uint64(handle), features, int(rows), int(cols), target)
	if err != nil {
		setLastError(err)
		return 3
	}
	*scorePtr = C.double(score)
	return 0
}

//export ModelWeights
func ModelWeights(handle C.ulonglong, weightsPtr *C.double, capacity C.int, interceptPtr *C.double) C.int {
	setLastError(nil)
	model, err := fetchModel(uint64(handle))
	if err != nil {
		setLastError(err)
		return -1
	}
	if int(capacity) >= len(model.Weights) {
		out, err := sliceFromPtr(weightsPtr, len(model.Weights))
		if err != nil {
			setLastError(err)
			return -1
		}
		copy(out, model.Weights)
	}
	if interceptPtr != nil {
		*interceptPtr = C.double(model.Intercept)
	}
	return C.int(len(model.Weights))
}

//export SaveModel
func SaveModel(handle C.ulonglong, path *C.char) C.int {
	setLastError(nil)
	model, err := fetchModel(uint64(handle))
	if err != nil {
		setLastError(err)
		return 1
	}
	if err = regression.SaveModel(C.GoString(path), model); err != nil {
		setLastError(err)
		return 2
	}
	return 0
}

//export LoadModel
func LoadModel(path *C.char) C.ulonglong {
	setLastError(nil)
	model, err := regression.LoadModel(C.GoString(path))
	if err != nil {
		setLastError(err)
		return 0
	}
	return C.ulonglong(storeModel(model))
}

//export FreeModel
func FreeModel(handle C.ulonglong) {
	freeModel(uint64(handle))
}

//export Dbscan
func Dbscan(
	coordsPtr *C.double,
	n C.int,
	epsilon C.double,
	minPts C.int,
	useKDTree C.int,
	labelsPtr *C.int,
	rolesPtr *C.int,
) C.int {
	setLastError(nil)
	if n < 0 {
		setLastError(errors.New("negative point count"))
		return -1
	}
	coords, err := copyFloatSlice(coordsPtr, 2*int(n))
	if err != nil {
		setLastError(err)
		return -1
	}
	params := density.Params{Epsilon: float64(epsilon), MinPts: int(minPts)}
	if useKDTree != 0 {
		params.Index = density.KDTree
	}

	labels := make([]int, int(n))
	roles := make([]int, int(n))
	numClusters, err := dbscanRows(coords, int(n), params, labels, roles)
	if err == nil {
		err = copyInts(labelsPtr, labels)
	}
	if err == nil && rolesPtr != nil {
		err = copyInts(rolesPtr, roles)
	}
	if err != nil {
		setLastError(err)
		return -1
	}
	return C.int(numClusters)
}

//export Agglomerative
func Agglomerative(coordsPtr *C.double, n C.int, linkage, metric C.int, clusters C.int, labelsPtr *C.int) C.int {
	setLastError(nil)
	if n < 0 {
		setLastError(errors.New("negative point count"))
		return 1
	}
	coords, err := copyFloatSlice(coordsPtr, 2*int(n))
	if err != nil {
		setLastError(err)
		return 1
	}
	labels := make([]int, int(n))
	params := hierarchy.Params{Linkage: hierarchy.Linkage(linkage), Metric: hierarchy.Metric(metric)}
	if err = agglomerativeRows(coords, int(n), params, int(clusters), labels); err != nil {
		setLastError(err)
		return 2
	}
	if err = copyInts(labelsPtr, labels); err != nil {
		setLastError(err)
		return 3
	}
	return 0
}

//export GetLastError
func GetLastError() *C.char {
	errStr := getLastError()
	if errStr == "" {
		return nil
	}
	return C.CString(errStr)
}

//export FreeCString
func FreeCString(str *C.char) {
	if str != nil {
		C.free(unsafe.Pointer(str))
	}
}

func main() {}
