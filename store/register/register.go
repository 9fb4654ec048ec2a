package register

import (
	_ "github.com/xxxsen/objdav/store/badger"
	_ "github.com/xxxsen/objdav/store/mem"
	_ "github.com/xxxsen/objdav/store/s3"
)
