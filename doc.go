// Package gridmv computes dense matrix-vector products y = A·x with A split
// into square blocks over a k×k grid of processes.
//
// What:
//
//	A message-passing implementation of the classic 2D-decomposed product:
//		• x fragments start on the last grid column and move to the diagonal
//		• the diagonal broadcasts each fragment down its column
//		• every process multiplies its block locally
//		• row groups sum the partial products back into the last column
//
// Layout:
//
//	matrix/        row-major Dense blocks, validators and the local MatVecInto kernel
//	comm/          process-group handles: Send/Recv, Bcast, ReduceSum, Sub, Free;
//	               an in-memory goroutine substrate and an MPI one (-tags mpi)
//	grid/          k×k topology, per-phase roles, Cartesian communicator
//	parmv/         Multiply, the collective entry point, with its state machine
//	layout/        split a global gonum problem into shares, assemble y, serial reference
//	cmd/gridmv/    command-line driver
//
// Quick start:
//
//	shares, _ := layout.Split(a, x, k)
//	err := comm.Run(ctx, k*k, func(ctx context.Context, c comm.Comm) error {
//		cart, err := grid.NewCart(c)
//		if err != nil {
//			return err
//		}
//		s := shares[c.Rank()]
//		return parmv.Multiply(ctx, n, s.Block, s.X, s.Y, cart)
//	})
//	y, _ := layout.Assemble(shares)
package gridmv
