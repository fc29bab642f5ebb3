package reporting

import "errors"

var ErrCustomerNotFound = errors.New("customer not found")
