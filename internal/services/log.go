package services

import "github.com/op/go-logging"

var log = logging.MustGetLogger("services")
