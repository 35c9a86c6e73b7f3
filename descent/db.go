package descent

import "fmt"

const (
	// TblSteps is the name of the sql database table that contains the
	// rate, cost and largest gradient component of every step.
	TblSteps = "descentsteps"
	// TblPositions is the name of the sql database table that contains
	// position snapshots taken with Snapshot.
	TblPositions = "descentpositions"
)

func (o *Optimizer) initdb() error {
	if o.Db == nil {
		return nil
	}

	s := "CREATE TABLE IF NOT EXISTS " + TblSteps + " (run TEXT,iter INTEGER,rate REAL,cost REAL,gradmax REAL);"
	if _, err := o.Db.Exec(s); err != nil {
		return fmt.Errorf("create %v table: %w", TblSteps, err)
	}

	s = "CREATE TABLE IF NOT EXISTS " + TblPositions + " (run TEXT,iter INTEGER,row INTEGER,col INTEGER,val REAL);"
	if _, err := o.Db.Exec(s); err != nil {
		return fmt.Errorf("create %v table: %w", TblPositions, err)
	}
	return nil
}

func (o *Optimizer) updateDb(cost float64) error {
	if o.Db == nil {
		return nil
	}

	s := "INSERT INTO " + TblSteps + " (run,iter,rate,cost,gradmax) VALUES (?,?,?,?,?);"
	_, err := o.Db.Exec(s, o.RunID, o.count, o.rate, cost, MaxAbs(o.grad))
	if err != nil {
		return fmt.Errorf("record step %v: %w", o.count, err)
	}
	return nil
}

// Snapshot writes the current positions into the positions table.  It is a
// no-op when the optimizer has no database.
func (o *Optimizer) Snapshot() (err error) {
	if o.Db == nil {
		return nil
	}

	tx, err := o.Db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	s := "INSERT INTO " + TblPositions + " (run,iter,row,col,val) VALUES (?,?,?,?,?);"
	r, c := o.Mesh.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if _, err = tx.Exec(s, o.RunID, o.count, i, j, o.Mesh.Pos.At(i, j)); err != nil {
				return fmt.Errorf("snapshot %v,%v: %w", i, j, err)
			}
		}
	}
	return nil
}
