// SPDX-License-Identifier: MIT

// Package workgraph traverses a "work graph": a directed graph whose vertices
// each carry an unpredictable amount of work, and whose neighbors are only
// discovered by doing that work.
//
// Traversal is level-synchronous breadth-first. Each level's frontier is put
// on a shared queue drained by a fixed pool of workers, so slow vertices do
// not stall a statically assigned partition. Workers claim newly discovered
// vertices through a striped visited set (no vertex is processed twice) and
// collect them in task-local buffers that are merged once per level.
//
// Cycles and self-loops are allowed; every vertex reachable from the start is
// processed exactly once.
package workgraph
